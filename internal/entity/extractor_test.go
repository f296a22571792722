package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract_FilePath(t *testing.T) {
	ents := Extract("edit internal/parser/parser.go and see config.yaml")
	assertHas(t, ents, TypeFilePath, "internal/parser/parser.go")
	assertHas(t, ents, TypeFilePath, "config.yaml")
}

func TestExtract_FilePathCaseSensitive(t *testing.T) {
	ents := Extract("open Internal/Parser/Main.go")
	assertHas(t, ents, TypeFilePath, "Internal/Parser/Main.go")
}

func TestExtract_ErrorVsException(t *testing.T) {
	ents := Extract("got ENOENT, then a NullPointerException, and ErrNotFound")
	assertHas(t, ents, TypeError, "enoent")
	assertHas(t, ents, TypeError, "errnotfound")
	assertHas(t, ents, TypeException, "nullpointerexception")
}

func TestExtract_URL(t *testing.T) {
	ents := Extract("see https://example.com/docs/api?x=1 for details")
	assertHas(t, ents, TypeURL, "https://example.com/docs/api?x=1")
}

func TestExtract_Port(t *testing.T) {
	ents := Extract("listening on :8080, also port 9090")
	assertHas(t, ents, TypePort, ":8080")
	assertHas(t, ents, TypePort, "port 9090")
}

func TestExtract_Command(t *testing.T) {
	ents := Extract("run `go test ./...` then git commit")
	assertHas(t, ents, TypeCommand, "go test")
	assertHas(t, ents, TypeCommand, "git commit")
}

func TestExtract_Package(t *testing.T) {
	ents := Extract("import github.com/google/uuid and @babel/core")
	assertHas(t, ents, TypePackage, "github.com/google/uuid")
	assertHas(t, ents, TypePackage, "@babel/core")
}

func TestExtract_HTTPStatus(t *testing.T) {
	ents := Extract("the server replied 404 Not Found and then 200 OK")
	assertHas(t, ents, TypeHTTPStatus, "404 not found")
	assertHas(t, ents, TypeHTTPStatus, "200 ok")
}

func TestExtract_HTTPStatus_BareNumberIgnored(t *testing.T) {
	ents := Extract("retried 3 times after waiting 404 seconds")
	_, ok := ents[Entity{Type: TypeHTTPStatus, Surface: "404"}]
	assert.False(t, ok)
}

func TestExtract_Function(t *testing.T) {
	ents := Extract("call parseConfig() before Render()")
	assertHas(t, ents, TypeFunction, "parseconfig()")
	assertHas(t, ents, TypeFunction, "render()")
}

func TestExtract_ClassName_NotDoubleCountedWithException(t *testing.T) {
	ents := Extract("raised a TypeError during ValidationPipeline setup")
	assertHas(t, ents, TypeException, "typeerror")
	assertHas(t, ents, TypeClassName, "validationpipeline")
	_, ok := ents[Entity{Type: TypeClassName, Surface: "typeerror"}]
	assert.False(t, ok, "class_name must not double-count a surface the exception pattern owns")
}

func TestExtract_EnvVar(t *testing.T) {
	ents := Extract("set SUPERCOMPACT_BUDGET and API_KEY")
	assertHas(t, ents, TypeEnvVar, "supercompact_budget")
	assertHas(t, ents, TypeEnvVar, "api_key")
}

func TestExtract_PerTurnUniqueness(t *testing.T) {
	ents := Extract("error.go error.go error.go")
	assert.Len(t, ents, 1)
}

func TestExtract_TrailingPunctuationTrimmed(t *testing.T) {
	ents := Extract("see (internal/parser/parser.go), then run `go test`.")
	assertHas(t, ents, TypeFilePath, "internal/parser/parser.go")
	_, ok := ents[Entity{Type: TypeFilePath, Surface: "internal/parser/parser.go)"}]
	assert.False(t, ok, "trailing punctuation must be trimmed from the surface")
}

func assertHas(t *testing.T, ents map[Entity]struct{}, typ Type, surface string) {
	t.Helper()
	_, ok := ents[Entity{Type: typ, Surface: surface}]
	assert.True(t, ok, "expected entity %s:%q in %v", typ, surface, ents)
}
