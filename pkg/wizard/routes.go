package wizard

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the full mount path for the wizard route under basePath.
func MountPath(basePath string, wz *Wizard) string {
	routePath := "/"
	if wz != nil {
		routePath = wz.action
	}
	return mountPath(basePath, routePath)
}

// RegisterRoutes registers the wizard handler under basePath on mux, using the
// wizard's action path as the route. The wizard's form action is updated to
// the registered pattern so rendered pages post back to the mounted route.
// Call before serving traffic.
func RegisterRoutes(mux Mux, basePath string, wz *Wizard, done CompletionHandlerFunc) (string, error) {
	if mux == nil {
		return "", fmt.Errorf("wizard: missing mux")
	}
	if wz == nil {
		return "", fmt.Errorf("wizard: missing wizard")
	}
	pattern := mountPath(basePath, wz.action)
	wz.action = pattern
	mux.Handle(pattern, wz.Handler(done))
	return pattern, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
