package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	var p Project
	if err := json.Unmarshal([]byte(`{"id":3,"name":"Empty","tasks":null}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p.Normalize()
	if p.Tasks == nil || len(p.Tasks) != 0 {
		t.Fatalf("tasks: got %#v, want empty slice", p.Tasks)
	}
	if p.Participants == nil || len(p.Participants) != 0 {
		t.Fatalf("participants: got %#v, want empty slice", p.Participants)
	}
}

func TestListsKeepServerOrder(t *testing.T) {
	body := `{
		"id": 1,
		"name": "Demo",
		"tasks": [{"id": 7, "title": "second"}, {"id": 5, "title": "first"}],
		"participants": [
			{"id": 9, "user": {"id": 2, "username": "bob"}},
			{"id": 3, "user": {"id": 1, "username": "alice"}}
		]
	}`
	var p Project
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got, want := p.TaskTitles(), []string{"second", "first"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("task titles: got %v, want %v", got, want)
	}
	if got, want := p.ParticipantUsernames(), []string{"bob", "alice"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("participants: got %v, want %v", got, want)
	}
}
