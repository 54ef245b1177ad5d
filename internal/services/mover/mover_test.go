package mover

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tetris-net/internal/wire"
)

func postJSON(t *testing.T, url, body string, out any) int {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	return resp.StatusCode
}

func TestMove(t *testing.T) {
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()

	tests := []struct {
		name   string
		body   string
		expect wire.MoveResponse
	}{
		{"left", `{"x":3,"y":0,"direccion":"izquierda"}`, wire.MoveResponse{Exito: true, X: 2, Y: 0}},
		{"right", `{"x":3,"y":0,"direccion":"derecha"}`, wire.MoveResponse{Exito: true, X: 4, Y: 0}},
		{"down", `{"x":3,"y":0,"direccion":"abajo"}`, wire.MoveResponse{Exito: true, X: 3, Y: 1}},
		// Bounds are the board's concern.
		{"off the edge", `{"x":0,"y":0,"direccion":"izquierda"}`, wire.MoveResponse{Exito: true, X: -1, Y: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out wire.MoveResponse
			code := postJSON(t, srv.URL+"/deslizar", tt.body, &out)
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, tt.expect, out)
		})
	}
}

func TestMoveValidation(t *testing.T) {
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()

	for _, body := range []string{
		`{"x":3,"y":0,"direccion":"arriba"}`,
		`{"x":3,"direccion":"abajo"}`,
		`{"x":3,"y":0}`,
		`[`,
	} {
		var out wire.Failure
		code := postJSON(t, srv.URL+"/deslizar", body, &out)
		assert.Equal(t, http.StatusBadRequest, code, body)
		assert.False(t, out.Exito)
	}
}

func TestMovePiece(t *testing.T) {
	srv := httptest.NewServer(NewHandler())
	defer srv.Close()

	body := `{"tetramino":{"tipo":"I","matriz":[[0,0,0,0],[1,1,1,1],[0,0,0,0],[0,0,0,0]]},"x":3,"y":5,"direccion":"abajo"}`
	var out wire.PieceResponse
	code := postJSON(t, srv.URL+"/deslizar/tetramino", body, &out)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, out.Exito)
	assert.Equal(t, 3, out.X)
	assert.Equal(t, 6, out.Y)
	require.NotNil(t, out.Tetramino)
	assert.Equal(t, "I", out.Tetramino.Tipo)

	var fail wire.Failure
	code = postJSON(t, srv.URL+"/deslizar/tetramino", `{"x":3,"y":5,"direccion":"abajo"}`, &fail)
	assert.Equal(t, http.StatusBadRequest, code)
}
