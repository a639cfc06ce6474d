package handler

import (
	"fmt"
	"strings"

	"github.com/gatherly/event-manager/internal/errdef"
	"github.com/gin-gonic/gin"
)

func DataBinder(c *gin.Context, req interface{}) error {
	contentType := c.ContentType()
	if contentType != "application/json" && !strings.HasPrefix(contentType, "multipart/form-data") {
		reason := fmt.Sprintf("%s only accepts content of type application/json or multipart/form-data", c.FullPath())
		return errdef.NewUnsupportedMediaType(reason)
	}

	if err := c.ShouldBind(req); err != nil {
		return errdef.NewBadRequest("error binding data: %v", err)
	}

	return nil
}
