package api

import (
	"github.com/bitmark-inc/beacon-api/lifecycle"
	"github.com/bitmark-inc/beacon-api/store"
)

var (
	errorMessageMap = map[int64]string{
		999: "internal server error",

		1006: "invalid value of client version",
		1007: "API for this client version has been discontinued",

		1010: "invalid parameters",
		1011: "cannot parse request",

		1200: store.ErrEmergencyNotFound.Error(),
		1201: lifecycle.ErrPermissionDenied.Error(),
		1202: lifecycle.ErrInvalidCategory.Error(),
		1203: lifecycle.ErrInvalidLocation.Error(),
	}

	errorInternalServer           = errorJSON(999)
	errorInvalidClientVersion     = errorJSON(1006)
	errorUnsupportedClientVersion = errorJSON(1007)

	errorInvalidParameters  = errorJSON(1010)
	errorCannotParseRequest = errorJSON(1011)

	errorEmergencyNotFound        = errorJSON(1200)
	errorLocationPermissionDenied = errorJSON(1201)
	errorInvalidEmergencyCategory = errorJSON(1202)
	errorInvalidEmergencyLocation = errorJSON(1203)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
