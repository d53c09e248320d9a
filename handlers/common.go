package handlers

import (
	"docpress/helper"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var httpHelper = &helper.HTTPHelper{}

// actorID pulls the authenticated actor out of the request context. The auth
// middleware put it there; mutating routes are never reachable without it.
func actorID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("user_id")
	if !ok {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httpHelper.SendBadRequest(c, "invalid "+name, httpHelper.EmptyJsonMap())
		return uuid.Nil, false
	}
	return id, true
}
