package middleware

import (
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// APIVersion represents API version information
type APIVersion struct {
	Version    string     `json:"version"`
	Status     string     `json:"status"` // "active", "deprecated"
	SunsetDate *time.Time `json:"sunset_date,omitempty"`
	Message    string     `json:"message,omitempty"`
}

// VersionMiddleware stamps version headers on every route of a version group
type VersionMiddleware struct {
	supportedVersions map[string]APIVersion
	defaultVersion    string
}

func NewVersionMiddleware() *VersionMiddleware {
	return &VersionMiddleware{
		supportedVersions: map[string]APIVersion{
			"v1": {
				Version: "v1",
				Status:  "active",
				Message: "Current stable API version",
			},
		},
		defaultVersion: "v1",
	}
}

// VersionHeader adds version information to response headers
func (vm *VersionMiddleware) VersionHeader(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("X-API-Version", version)

			if ver, exists := vm.supportedVersions[version]; exists {
				if ver.Status == "deprecated" && ver.SunsetDate != nil {
					h.Set("X-API-Deprecated", "true")
					h.Set("X-API-Sunset", ver.SunsetDate.Format(time.RFC3339))
					h.Set("Warning", "299 shop \"This API version is deprecated and will be removed on "+ver.SunsetDate.Format("2006-01-02")+"\"")
				}
				if ver.Message != "" {
					h.Set("X-API-Message", ver.Message)
				}
			}

			return next(c)
		}
	}
}

// VersionRoute creates a version-specific route group. Extra middleware runs
// after the version headers are set.
func (vm *VersionMiddleware) VersionRoute(e *echo.Echo, version string, m ...echo.MiddlewareFunc) *echo.Group {
	group := e.Group("/"+version, vm.VersionHeader(version))
	group.Use(m...)
	return group
}

// Deprecate marks a version as deprecated with a sunset date.
func (vm *VersionMiddleware) Deprecate(version string, sunset time.Time, message string) {
	ver := vm.supportedVersions[version]
	ver.Version = version
	ver.Status = "deprecated"
	ver.SunsetDate = &sunset
	ver.Message = message
	vm.supportedVersions[version] = ver
}

// VersionsHandler lists supported API versions.
func (vm *VersionMiddleware) VersionsHandler(c echo.Context) error {
	versions := make([]APIVersion, 0, len(vm.supportedVersions))
	for _, v := range vm.supportedVersions {
		versions = append(versions, v)
	}
	sort.Slice(versions, func(i, j int) bool { return versions[i].Version < versions[j].Version })

	return c.JSON(http.StatusOK, map[string]interface{}{
		"default":  vm.defaultVersion,
		"versions": versions,
	})
}
