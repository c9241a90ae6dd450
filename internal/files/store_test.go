package files

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestSaveAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	req := uploadRequest(t, "doc", "invoice.pdf", []byte("%PDF-1.4 test"))
	require.NoError(t, req.ParseMultipartForm(1<<20))

	header := req.MultipartForm.File["doc"][0]
	ref, err := store.Save(header, "purchases")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(ref, filepath.Join("purchases")+string(os.PathSeparator)))
	require.True(t, strings.HasSuffix(ref, ".pdf"))

	data, err := os.ReadFile(store.Path(ref))
	require.NoError(t, err)
	require.Equal(t, []byte("%PDF-1.4 test"), data)

	require.NoError(t, store.Remove(ref))
	require.NoError(t, store.Remove(ref), "removing twice must not fail")
}

func TestSaveRejectsUnsupportedExtension(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	req := uploadRequest(t, "doc", "malware.exe", []byte("nope"))
	require.NoError(t, req.ParseMultipartForm(1<<20))

	_, err = store.Save(req.MultipartForm.File["doc"][0], "purchases")
	require.ErrorIs(t, err, ErrUnsupportedType)
}
