package api

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bitmark-inc/beacon-api/geo"
	"github.com/bitmark-inc/beacon-api/lifecycle"
	"github.com/bitmark-inc/beacon-api/schema"
	"github.com/bitmark-inc/beacon-api/store"
)

type emergencyResponse struct {
	schema.Emergency
	Acknowledged bool     `json:"acknowledged"`
	DistanceKm   *float64 `json:"distance_km,omitempty"`
	Distance     string   `json:"distance,omitempty"`
}

// abortWithLifecycleError maps errors of the emergency lifecycle to responses
func abortWithLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrEmergencyNotFound):
		abortWithEncoding(c, http.StatusNotFound, errorEmergencyNotFound, err)
	case errors.Is(err, lifecycle.ErrPermissionDenied):
		abortWithEncoding(c, http.StatusForbidden, errorLocationPermissionDenied, err)
	case errors.Is(err, lifecycle.ErrInvalidCategory):
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidEmergencyCategory, err)
	case errors.Is(err, lifecycle.ErrInvalidLocation):
		abortWithEncoding(c, http.StatusBadRequest, errorInvalidEmergencyLocation, err)
	default:
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
	}
}

func (s *Server) getCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": schema.Categories})
}

// signalEmergency is the API for a victim to ask for help at the position
// given in the Geo-Position header
func (s *Server) signalEmergency(c *gin.Context) {
	var params struct {
		Category string `json:"category"`
	}

	if err := c.ShouldBindJSON(&params); err != nil {
		abortWithEncoding(c, http.StatusBadRequest, errorCannotParseRequest, err)
		return
	}

	location := geoPositionHeader(c.GetHeader(geoPositionHeaderName))
	id, err := s.controller.SignalFrom(c.Request.Context(), params.Category, location)
	if err != nil {
		abortWithLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id})
}

// getEmergency returns an emergency. The distance to the emergency is added
// when the requester sends its position.
func (s *Server) getEmergency(c *gin.Context) {
	e, err := s.controller.Emergency(c.Request.Context(), c.Param("emergencyID"))
	if err != nil {
		abortWithLifecycleError(c, err)
		return
	}

	resp := emergencyResponse{
		Emergency:    *e,
		Acknowledged: lifecycle.Acknowledged(e),
	}

	if gp := c.GetHeader(geoPositionHeaderName); gp != "" {
		if lat, lng, err := parseGeoPosition(gp); err == nil {
			d := geo.DistanceKm(lat, lng, e.Latitude, e.Longitude)
			resp.DistanceKm = &d
			resp.Distance = geo.FormatDistance(d)
		} else {
			c.Error(err)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// acknowledgeEmergency is the API for a responder to take an emergency
func (s *Server) acknowledgeEmergency(c *gin.Context) {
	result, err := s.controller.AckCurrent(c.Request.Context(), c.Param("emergencyID"))
	if err != nil {
		abortWithLifecycleError(c, err)
		return
	}

	status := "OK"
	if !result.Claimed {
		status = "ALREADY_ACKNOWLEDGED"
	}

	c.JSON(http.StatusOK, gin.H{
		"result":         status,
		"claimed":        result.Claimed,
		"directions_url": result.DirectionsURL,
		"emergency":      result.Emergency,
	})
}

// streamEmergency pushes every state of one emergency as server-sent events
func (s *Server) streamEmergency(c *gin.Context) {
	id := c.Param("emergencyID")
	s.streamEmergencyUpdates(c, func(onUpdate func(*schema.Emergency)) (store.Unsubscribe, error) {
		return s.controller.SubscribeOne(id, onUpdate)
	})
}

// streamLatestOpenEmergency pushes the newest open emergency as server-sent
// events. A null emergency means nothing is open.
func (s *Server) streamLatestOpenEmergency(c *gin.Context) {
	s.streamEmergencyUpdates(c, s.controller.SubscribeLatestOpen)
}

func (s *Server) streamEmergencyUpdates(c *gin.Context, subscribe func(func(*schema.Emergency)) (store.Unsubscribe, error)) {
	updates := make(chan *schema.Emergency, 1)
	unsubscribe, err := subscribe(func(e *schema.Emergency) {
		// a slow client only gets the newest state
		for {
			select {
			case updates <- e:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	if err != nil {
		abortWithEncoding(c, http.StatusInternalServerError, errorInternalServer, err)
		return
	}
	defer unsubscribe()

	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case e := <-updates:
			c.SSEvent("emergency", gin.H{
				"emergency":    e,
				"acknowledged": e.IsAcknowledged(),
			})
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}
