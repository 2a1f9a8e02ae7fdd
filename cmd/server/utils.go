package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func replyError(ctx *gin.Context, code int, kind string, err error) {
	ctx.JSON(code, map[string]any{
		"error":   kind,
		"details": err.Error(),
	})
}

func tryBindParams(ctx *gin.Context, obj any) (ok bool) {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		replyError(ctx, http.StatusUnprocessableEntity, ErrBadFormat, err)
		return false
	}
	return true
}
