package assets

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/anotherclibrary/acsite/pkg/style"
)

func TestStylesheet(t *testing.T) {
	css := string(Stylesheet(style.Index()))

	require.Contains(t, css, ".Flex {")
	require.Contains(t, css, ".ac-hero {background-color:#2D3748;")
	require.Contains(t, css, ".ac-button {")
	require.Equal(t, css, string(Stylesheet(style.Index())))
}

func TestHandler_ServesIndexCSS(t *testing.T) {
	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/index.css", nil))

	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/css"))
	require.Contains(t, w.Body.String(), ".Flex")
}

func TestFileNames(t *testing.T) {
	require.Equal(t, []string{StylesheetName}, FileNames())
}
