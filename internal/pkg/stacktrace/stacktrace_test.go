package stacktrace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalPaths(t *testing.T) {
	stack := []byte(`goroutine 1 [running]:
runtime/debug.Stack()
	/usr/local/go/src/runtime/debug/stack.go:26 +0x5e
github.com/shandysiswandi/otplogin/internal/pkg/goroutine.(*Manager).Go.func1()
	/app/internal/pkg/goroutine/goroutine.go:71 +0x9a
github.com/shandysiswandi/otplogin/internal/login/usecase.(*Usecase).dispatch(...)
	/app/internal/login/usecase/delivery.go:30
`)

	assert.Equal(t, []string{
		"internal/pkg/goroutine/goroutine.go:71",
		"internal/login/usecase/delivery.go:30",
	}, InternalPaths(stack))
	assert.Empty(t, InternalPaths([]byte("no frames here")))
}
