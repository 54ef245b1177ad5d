package registry

import (
	"errors"
	"net/http"
	"testing"

	"github.com/vovakirdan/tetris-net/internal/config"
)

func TestRegisterAndCreate(t *testing.T) {
	Register("test-echo", "Echo", func(env Env) (Service, error) {
		return Service{Name: "test-echo", Addr: env.Config.Board.Addr, Handler: http.NotFoundHandler()}, nil
	})

	if !Exists("test-echo") {
		t.Fatal("Exists() = false after Register")
	}

	found := false
	for _, info := range List() {
		if info.Name == "test-echo" {
			found = info.Title == "Echo"
		}
	}
	if !found {
		t.Error("List() missing registered service")
	}

	svc, err := Create("test-echo", Env{Config: config.Default()})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if svc.Addr != ":3001" {
		t.Errorf("Create() addr = %q", svc.Addr)
	}
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("test-missing", Env{}); err == nil {
		t.Error("Create() of unknown service should fail")
	}

	boom := errors.New("boom")
	Register("test-broken", "Broken", func(Env) (Service, error) { return Service{}, boom })
	if _, err := Create("test-broken", Env{}); !errors.Is(err, boom) {
		t.Errorf("Create() error = %v, expected wrapped boom", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test-dup", "Dup", func(Env) (Service, error) { return Service{}, nil })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("test-dup", "Dup", func(Env) (Service, error) { return Service{}, nil })
}

func TestListSorted(t *testing.T) {
	Register("test-b", "B", func(Env) (Service, error) { return Service{}, nil })
	Register("test-a", "A", func(Env) (Service, error) { return Service{}, nil })

	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].Name > list[i].Name {
			t.Fatalf("List() not sorted: %v", list)
		}
	}
}
