package utils

import (
	"os"
	"path"
	"testing"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/assert"
)

func TestNewLocalizerBuiltInMessages(t *testing.T) {
	title, err := NewLocalizer("en").Localize(&i18n.LocalizeConfig{
		MessageID:    "notification.emergency.title",
		TemplateData: map[string]interface{}{"Category": "Fire"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Emergency: Fire", title)

	body, err := NewLocalizer("zh_tw").Localize(&i18n.LocalizeConfig{
		MessageID: "notification.emergency.body",
		TemplateData: map[string]interface{}{
			"Latitude":  "25.0330",
			"Longitude": "121.5654",
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "位置：25.0330, 121.5654", body)
}

func TestNewLocalizerFallbackToEnglish(t *testing.T) {
	title, err := NewLocalizer("fr").Localize(&i18n.LocalizeConfig{
		MessageID:    "notification.emergency.title",
		TemplateData: map[string]interface{}{"Category": "Medical"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "Emergency: Medical", title)
}

func TestInitI18NBundleOverride(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, os.WriteFile(path.Join(dir, "en.yaml"), []byte(`notification:
  emergency:
    title: "SOS {{.Category}}"
`), 0644))

	assert.NoError(t, InitI18NBundle(dir))
	defer func() {
		assert.NoError(t, InitI18NBundle(""))
	}()

	title, err := NewLocalizer("en").Localize(&i18n.LocalizeConfig{
		MessageID:    "notification.emergency.title",
		TemplateData: map[string]interface{}{"Category": "Fire"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "SOS Fire", title)

	_, err = NewLocalizer("en").Localize(&i18n.LocalizeConfig{MessageID: "notification.unknown"})
	assert.IsType(t, &i18n.MessageNotFoundErr{}, err)
}
