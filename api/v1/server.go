package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /scheduler)
	GetScheduler(c *gin.Context)
	// (GET /workloads)
	ListWorkloads(c *gin.Context, params ListWorkloadsParams)
	// (POST /workloads)
	RunWorkload(c *gin.Context)
	// (GET /workloads/{id})
	GetWorkload(c *gin.Context, id string)
}

// ServerInterfaceWrapper binds request parameters before calling the
// handler.
type ServerInterfaceWrapper struct {
	Handler      ServerInterface
	ErrorHandler func(*gin.Context, error, int)
}

func (w *ServerInterfaceWrapper) GetScheduler(c *gin.Context) {
	w.Handler.GetScheduler(c)
}

func (w *ServerInterfaceWrapper) ListWorkloads(c *gin.Context) {
	var params ListWorkloadsParams

	if err := runtime.BindQueryParameter("form", true, false, "kind", c.Request.URL.Query(), &params.Kind); err != nil {
		w.ErrorHandler(c, fmt.Errorf("invalid format for parameter kind: %w", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", c.Request.URL.Query(), &params.Limit); err != nil {
		w.ErrorHandler(c, fmt.Errorf("invalid format for parameter limit: %w", err), http.StatusBadRequest)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "offset", c.Request.URL.Query(), &params.Offset); err != nil {
		w.ErrorHandler(c, fmt.Errorf("invalid format for parameter offset: %w", err), http.StatusBadRequest)
		return
	}

	w.Handler.ListWorkloads(c, params)
}

func (w *ServerInterfaceWrapper) RunWorkload(c *gin.Context) {
	w.Handler.RunWorkload(c)
}

func (w *ServerInterfaceWrapper) GetWorkload(c *gin.Context) {
	w.Handler.GetWorkload(c, c.Param("id"))
}

// RegisterHandlers mounts every handler of si on router.
func RegisterHandlers(router gin.IRouter, si ServerInterface) {
	w := &ServerInterfaceWrapper{
		Handler: si,
		ErrorHandler: func(c *gin.Context, err error, status int) {
			c.JSON(status, ErrorResponse{Error: err.Error()})
		},
	}

	router.GET("/scheduler", w.GetScheduler)
	router.GET("/workloads", w.ListWorkloads)
	router.POST("/workloads", w.RunWorkload)
	router.GET("/workloads/:id", w.GetWorkload)
}
