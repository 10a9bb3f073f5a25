package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// clientVersionGateway rejects outdated mobile clients. Requests without
// client headers, such as those from dashboards, pass through.
func (s *Server) clientVersionGateway() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientType := c.GetHeader("Client-Type")
		if clientType == "" {
			c.Next()
			return
		}

		if clientType != "ios" && clientType != "android" {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidClientVersion)
			return
		}

		clientVersion, err := strconv.Atoi(c.GetHeader("Client-Version"))
		if err != nil || clientVersion <= 0 {
			abortWithEncoding(c, http.StatusBadRequest, errorInvalidClientVersion)
			return
		}

		clientMinimumVersion := viper.GetInt("clients." + clientType + ".minimum_client_version")
		if clientVersion < clientMinimumVersion {
			abortWithEncoding(c, http.StatusNotAcceptable, errorUnsupportedClientVersion)
			return
		}

		c.Next()
	}
}
