package fault

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := Newf(NotFound, "user with id %d not found", 7)
	if KindOf(err) != NotFound {
		t.Fatalf("got %q", KindOf(err))
	}
	if err.Error() != "user with id 7 not found" {
		t.Fatalf("got %q", err.Error())
	}

	// Wrapped fault errors keep their kind.
	wrapped := fmt.Errorf("list bookings: %w", err)
	if KindOf(wrapped) != NotFound {
		t.Fatalf("wrapped: got %q", KindOf(wrapped))
	}

	if KindOf(errors.New("plain")) != "" {
		t.Fatal("plain errors carry no kind")
	}
}

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		NotFound:         http.StatusNotFound,
		Ownership:        http.StatusNotFound,
		InvalidInput:     http.StatusBadRequest,
		DuplicateEmail:   http.StatusConflict,
		UnsupportedState: http.StatusBadRequest,
		AlreadyApproved:  http.StatusBadRequest,
	}
	for kind, want := range cases {
		if got := HTTPStatus(kind); got != want {
			t.Fatalf("HTTPStatus(%s) = %d; want %d", kind, got, want)
		}
	}
	if got := HTTPStatus(Kind("nope")); got != http.StatusInternalServerError {
		t.Fatalf("unknown kind: got %d", got)
	}
}
