package host

import "testing"

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<script>", "&lt;script&gt;"},
		{`a & "b" 'c'`, "a &amp; &quot;b&quot; &#39;c&#39;"},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	if got := escapeAttr("a\nb\t\"c\""); got != "a&#10;b&#9;&quot;c&quot;" {
		t.Errorf("escapeAttr = %q", got)
	}
}

func TestHTMLSerialization(t *testing.T) {
	d := NewDocument()
	li := d.CreateElement("li")
	d.SetAttribute(li, "class", "completed")
	input := d.CreateElement("input")
	d.SetAttribute(input, "type", "checkbox")
	d.SetAttribute(input, "checked", "")
	d.AppendChild(li, input)
	d.AppendChild(li, d.CreateText("1 < 2"))
	d.AppendChild(d.Body(), li)

	want := `<li class="completed"><input checked type="checkbox">1 &lt; 2</li>`
	if got := d.HTML(li); got != want {
		t.Errorf("HTML =\n%s\nwant\n%s", got, want)
	}

	withIDs := d.HTMLWithIDs(li)
	wantIDs := `<li data-mf-id="n1" class="completed"><input data-mf-id="n2" checked type="checkbox">1 &lt; 2</li>`
	if withIDs != wantIDs {
		t.Errorf("HTMLWithIDs =\n%s\nwant\n%s", withIDs, wantIDs)
	}

	if d.HTML("not a node") != "" {
		t.Error("foreign handle should serialize to empty string")
	}
}
