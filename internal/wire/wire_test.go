package wire

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tetris-net/internal/tetris"
)

func TestDecodeShape(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"valid", `{"tipo":"T","matriz":[[0,0,0,0],[0,1,0,0],[1,1,1,0],[0,0,0,0]]}`, nil},
		{"lowercase type", `{"tipo":"o","matriz":[[0,0,0,0],[0,1,1,0],[0,1,1,0],[0,0,0,0]]}`, nil},
		{"three rows", `{"tipo":"T","matriz":[[0,0,0,0],[0,1,0,0],[1,1,1,0]]}`, tetris.ErrInvalidMatrix},
		{"short row", `{"tipo":"T","matriz":[[0,0,0],[0,1,0,0],[1,1,1,0],[0,0,0,0]]}`, tetris.ErrInvalidMatrix},
		{"non binary", `{"tipo":"T","matriz":[[0,0,0,0],[0,2,0,0],[1,1,1,0],[0,0,0,0]]}`, tetris.ErrInvalidMatrix},
		{"missing matrix", `{"tipo":"T"}`, tetris.ErrInvalidMatrix},
		{"no occupied cells", `{"tipo":"O","matriz":[[0,0,0,0],[0,0,0,0],[0,0,0,0],[0,0,0,0]]}`, tetris.ErrInvalidMatrix},
		{"unknown type", `{"tipo":"Q","matriz":[[0,0,0,0],[0,1,0,0],[1,1,1,0],[0,0,0,0]]}`, tetris.ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Shape
			if err := json.Unmarshal([]byte(tt.body), &s); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			_, err := DecodeShape(&s)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("DecodeShape() error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeShape() error = %v, expected %v", err, tt.wantErr)
			}
		})
	}
}

func TestDecodeShapeNil(t *testing.T) {
	if _, err := DecodeShape(nil); !tetris.IsValidation(err) {
		t.Errorf("DecodeShape(nil) error = %v, expected a validation error", err)
	}
}

func TestShapeEncoding(t *testing.T) {
	o, _ := tetris.Lookup(tetris.TypeO)
	data, err := json.Marshal(FromShape(o))
	if err != nil {
		t.Fatal(err)
	}
	expected := `{"tipo":"O","matriz":[[0,0,0,0],[0,1,1,0],[0,1,1,0],[0,0,0,0]]}`
	if string(data) != expected {
		t.Errorf("encoded = %s, expected %s", data, expected)
	}
}

func TestBoardStateEncoding(t *testing.T) {
	var g tetris.Grid
	g[19][9] = 1
	data, err := json.Marshal(BoardState{Estado: g})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), `{"estado":[[0,0,0,0,0,0,0,0,0,0],`) {
		t.Errorf("unexpected prefix: %.60s", data)
	}
	if !strings.HasSuffix(string(data), `[0,0,0,0,0,0,0,0,0,1]]}`) {
		t.Errorf("unexpected suffix in %s", data)
	}
}

func TestActivePieceDecodeRequiresCoordinates(t *testing.T) {
	var a ActivePiece
	body := `{"tetramino":{"tipo":"I","matriz":[[0,0,0,0],[1,1,1,1],[0,0,0,0],[0,0,0,0]]},"x":3}`
	if err := json.Unmarshal([]byte(body), &a); err != nil {
		t.Fatal(err)
	}
	if _, err := a.Decode(); !tetris.IsValidation(err) {
		t.Errorf("Decode() error = %v, expected a validation error", err)
	}

	a.Y = Int(0)
	p, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if p.Position != (tetris.Position{X: 3, Y: 0}) || p.Shape.Type != tetris.TypeI {
		t.Errorf("Decode() = %+v", p)
	}
}

func TestPlaceResponseOmitsEmptyFields(t *testing.T) {
	data, _ := json.Marshal(FromPlacement(tetris.PlacementResult{OK: true}))
	if string(data) != `{"exito":true}` {
		t.Errorf("encoded = %s", data)
	}

	data, _ = json.Marshal(FromPlacement(tetris.PlacementResult{Reason: tetris.ReasonLocked, LinesCleared: 2}))
	if string(data) != `{"exito":false,"motivo":"FIJADA","lineas":2}` {
		t.Errorf("encoded = %s", data)
	}
}

func TestMoveRequestDecode(t *testing.T) {
	tests := []struct {
		name    string
		req     MoveRequest
		wantErr bool
		pos     tetris.Position
	}{
		{"down", MoveRequest{X: Int(3), Y: Int(0), Direccion: "abajo"}, false, tetris.Position{X: 3, Y: 0}},
		{"bad direction", MoveRequest{X: Int(3), Y: Int(0), Direccion: "arriba"}, true, tetris.Position{}},
		{"missing y", MoveRequest{X: Int(3), Direccion: "abajo"}, true, tetris.Position{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, _, err := tt.req.Decode()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Decode() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && pos != tt.pos {
				t.Errorf("Decode() pos = %+v, expected %+v", pos, tt.pos)
			}
		})
	}
}

func TestGameRequestPiece(t *testing.T) {
	p, err := GameRequest{Direccion: "abajo"}.Piece()
	if err != nil || p != nil {
		t.Errorf("Piece() without tetramino = %v, %v", p, err)
	}

	o, _ := tetris.Lookup(tetris.TypeO)
	p, err = GameRequest{Tetramino: FromShape(o), X: Int(1), Y: Int(2)}.Piece()
	if err != nil {
		t.Fatal(err)
	}
	if p.Position != (tetris.Position{X: 1, Y: 2}) {
		t.Errorf("Piece() position = %+v", p.Position)
	}
}
