package codec

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/hostbridge/pkg/errors"
)

type todoItem struct {
	ID    int64  `json:"id" cbor:"id"`
	Title string `json:"title" cbor:"title"`
	Done  bool   `json:"done" cbor:"done"`
}

type todoList struct {
	Owner string            `json:"owner" cbor:"owner"`
	Items []todoItem        `json:"items" cbor:"items"`
	Tags  map[string]string `json:"tags,omitempty" cbor:"tags,omitempty"`
	Score float64           `json:"score" cbor:"score"`
}

func TestRoundTripPreservesStructure(t *testing.T) {
	value := todoList{
		Owner: "ana",
		Items: []todoItem{
			{ID: math.MaxInt64, Title: "wide id", Done: true},
			{ID: -7, Title: "négatif"},
		},
		Tags:  map[string]string{"b": "2", "a": "1"},
		Score: 0.1,
	}

	for _, format := range []Format{JSON, CBOR} {
		t.Run(format.Name(), func(t *testing.T) {
			c := For[todoList](format)
			generic, err := c.Encode(value)
			if err != nil {
				t.Fatalf("Encode: %v", err)
			}
			got, err := c.Decode(generic)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if diff := cmp.Diff(value, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONGenericShape(t *testing.T) {
	generic, err := For[todoItem](JSON).Encode(todoItem{ID: 3, Title: "x"})
	if err != nil {
		t.Fatal(err)
	}
	m, ok := generic.(map[string]any)
	if !ok {
		t.Fatalf("generic = %T, want map[string]any", generic)
	}
	if m["title"] != "x" {
		t.Errorf("title = %v, want x", m["title"])
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	value := map[string]int{"z": 1, "a": 2, "m": 3}
	for _, format := range []Format{JSON, CBOR} {
		first, err := format.Marshal(value)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			again, _ := format.Marshal(value)
			if string(again) != string(first) {
				t.Fatalf("%s: encoding not deterministic", format.Name())
			}
		}
	}
}

func TestDecodeMismatchReturnsMarshalError(t *testing.T) {
	_, err := For[todoItem](JSON).Decode("not an object")
	var me *errors.MarshalError
	if !errors.As(err, &me) {
		t.Fatalf("err = %v, want *MarshalError", err)
	}
	if me.Direction != errors.Decode || me.Format != "json" {
		t.Errorf("unexpected error fields: %+v", me)
	}
	if me.Type != "codec.todoItem" {
		t.Errorf("Type = %q, want codec.todoItem", me.Type)
	}
}

func TestEncodeUnsupportedReturnsMarshalError(t *testing.T) {
	_, err := For[chan int](JSON).Encode(make(chan int))
	var me *errors.MarshalError
	if !errors.As(err, &me) || me.Direction != errors.Encode {
		t.Fatalf("err = %v, want encode MarshalError", err)
	}
}

func TestDecodeNilYieldsZero(t *testing.T) {
	got, err := For[int](nil).Decode(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		f, ok := Lookup(name)
		if !ok || f.Name() != name {
			t.Errorf("Lookup(%q) = %v, %v", name, f, ok)
		}
	}
	if _, ok := Lookup("xml"); ok {
		t.Error("Lookup(xml) should fail")
	}
}
