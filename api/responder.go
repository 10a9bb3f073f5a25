package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerResponder is the API for a responder device to register its push
// token. An empty token is accepted and ignored.
func (s *Server) registerResponder(c *gin.Context) {
	var params struct {
		Token string `json:"token"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidParameters, err)
		return
	}

	if err := s.controller.RegisterResponder(c.Request.Context(), params.Token); err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": "OK"})
}
