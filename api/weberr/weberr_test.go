package weberr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResponseThroughWrapping(t *testing.T) {
	base := errors.New("video[v1] not found")
	err := fmt.Errorf("handling request: %w", NotFound(base))

	body, status, ok := Response(err)
	if !ok {
		t.Fatal("expected a response")
	}
	if status != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, status)
	}
	if diff := cmp.Diff(&ErrorResponse{"the resource could not be found"}, body); diff != "" {
		t.Fatalf("unexpected body (-want +got):\n%s", diff)
	}
	if !errors.Is(err, base) {
		t.Fatal("expected the base error in the chain")
	}
}

func TestFieldsMerge(t *testing.T) {
	err := Unprocessable(errors.New("category not found"),
		WithFields(map[string]interface{}{"category_id": "c1", "video_id": "inner"}))
	err = Wrap(fmt.Errorf("creating video: %w", err),
		WithFields(map[string]interface{}{"video_id": "v1"}))

	got, ok := Fields(err)
	if !ok {
		t.Fatal("expected fields")
	}
	want := map[string]interface{}{"category_id": "c1", "video_id": "v1"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}

	body, status, _ := Response(err)
	if status != http.StatusUnprocessableEntity || body.(*ErrorResponse).Error != "category not found" {
		t.Fatalf("unexpected response %d %+v", status, body)
	}
}

func TestNoDecoration(t *testing.T) {
	if _, _, ok := Response(errors.New("boom")); ok {
		t.Fatal("plain errors carry no response")
	}
	if _, ok := Fields(errors.New("boom")); ok {
		t.Fatal("plain errors carry no fields")
	}
}
