package domain

import "testing"

func TestParseAttribute(t *testing.T) {
	tests := []struct {
		input   string
		want    Attribute
		wantErr bool
	}{
		{"logo", AttrLogo, false},
		{"remote_provider", AttrRemoteProvider, false},
		{"remote-id", AttrRemoteID, false},
		{" REMOTE_ID ", AttrRemoteID, false},
		{"title", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAttribute(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAttribute(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAttribute(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestAttribute_KeyRoundTrip(t *testing.T) {
	for _, a := range Attributes {
		got, err := ParseAttribute(a.Key())
		if err != nil {
			t.Fatalf("ParseAttribute(%q): %v", a.Key(), err)
		}
		if got != a {
			t.Errorf("expected %v, got %v", a, got)
		}
	}
	if Attribute(42).Valid() {
		t.Error("expected out-of-range attribute to be invalid")
	}
}

func TestParseNodeType(t *testing.T) {
	tests := []struct {
		input   string
		want    NodeType
		wantErr bool
	}{
		{"unit", NodeTypeContainer, false},
		{"Container", NodeTypeContainer, false},
		{"team", NodeTypeTeam, false},
		{"person", NodeTypePerson, false},
		{"venue", NodeTypeVenue, false},
		{"stadium", NodeTypeUnknown, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseNodeType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseNodeType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseNodeType(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNode_Value(t *testing.T) {
	var nilNode *Node
	if nilNode.Value(AttrLogo) != "" {
		t.Error("nil node should have no values")
	}

	n := &Node{Attributes: map[Attribute]string{AttrLogo: "logo.png"}}
	if got := n.Value(AttrLogo); got != "logo.png" {
		t.Errorf("expected logo.png, got %q", got)
	}
	if got := n.Value(AttrRemoteID); got != "" {
		t.Errorf("expected unset remote_id, got %q", got)
	}
}

func TestNodeUpdate_Apply(t *testing.T) {
	title := "Final"
	n := &Node{Title: "Semi", Content: "keep"}

	NodeUpdate{
		Title:      &title,
		Attributes: map[Attribute]string{AttrRemoteID: "E1"},
	}.Apply(n)

	if n.Title != "Final" {
		t.Errorf("expected title Final, got %q", n.Title)
	}
	if n.Content != "keep" {
		t.Errorf("content should be untouched, got %q", n.Content)
	}
	if n.Value(AttrRemoteID) != "E1" {
		t.Errorf("expected remote_id E1, got %q", n.Value(AttrRemoteID))
	}
}

func TestNode_CloneIsDeep(t *testing.T) {
	n := &Node{ID: "a", Attributes: map[Attribute]string{AttrLogo: "x"}}
	c := n.Clone()
	c.Attributes[AttrLogo] = "y"

	if n.Value(AttrLogo) != "x" {
		t.Error("mutating the clone changed the original")
	}
}
