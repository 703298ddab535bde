package renderer

import (
	"fmt"
	"strings"

	"github.com/golang/glog"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to glog's INFO log
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	glog.InfoDepth(1, strings.TrimSuffix(fmt.Sprintf(format, args...), "\n"))
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}
