package serialize

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrmoran/xtractly/internal/etree"
)

func sampleDoc() Document {
	body := etree.New(etree.Body)
	p := body.SubElement(etree.P)
	p.SetText("Hello world.")
	return Document{
		Title: "A Title", Author: "Jane Doe", URL: "https://example.com/a",
		Hostname: "example.com", Categories: []string{"news"}, Tags: []string{"go"},
		Body: body,
	}
}

func TestTextWithoutFormattingFlattens(t *testing.T) {
	d := sampleDoc()
	out := Text(d, false)
	if out != "Hello world." {
		t.Fatalf("Text() = %q; want %q", out, "Hello world.")
	}
}

func TestTextIncludesCommentsWhenPresent(t *testing.T) {
	d := sampleDoc()
	comments := etree.New(etree.Body)
	cp := comments.SubElement(etree.P)
	cp.SetText("A comment.")
	d.CommentsBody = comments

	out := Text(d, false)
	if !strings.Contains(out, "Hello world.") || !strings.Contains(out, "A comment.") {
		t.Fatalf("Text() = %q; want both body and comments text", out)
	}
}

func TestCSVEscapesTabsAndNewlines(t *testing.T) {
	d := sampleDoc()
	d.Body.Children()[0].SetText("line one\nline two\twith tab")
	out := CSV(d)
	if strings.Contains(out, "\n") {
		t.Fatalf("CSV() contains a literal newline: %q", out)
	}
	fields := strings.Split(out, "\t")
	if len(fields) < 8 {
		t.Fatalf("CSV() = %q; want at least 8 tab-separated fields", out)
	}
	if fields[0] != "A Title" {
		t.Fatalf("fields[0] = %q; want title", fields[0])
	}
}

func TestJSONRoundTripsCoreFields(t *testing.T) {
	d := sampleDoc()
	out, err := JSON(d)
	if err != nil {
		t.Fatalf("JSON() error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if decoded["title"] != "A Title" {
		t.Fatalf("decoded title = %v; want %q", decoded["title"], "A Title")
	}
	if decoded["text"] != "Hello world." {
		t.Fatalf("decoded text = %v; want %q", decoded["text"], "Hello world.")
	}
}

func TestXMLWrapsBodyWithMetadataAttributes(t *testing.T) {
	d := sampleDoc()
	out := XML(d)
	if !strings.Contains(out, `title="A Title"`) {
		t.Fatalf("XML() = %q; want a title attribute", out)
	}
	if !strings.HasPrefix(out, "<doc") || !strings.HasSuffix(out, "</doc>") {
		t.Fatalf("XML() = %q; want a doc-wrapped document", out)
	}
}

func TestXMLTEIValidatesKnownVocabulary(t *testing.T) {
	d := sampleDoc()
	out, err := XMLTEI(d, true)
	if err != nil {
		t.Fatalf("XMLTEI() error: %v", err)
	}
	if !strings.Contains(out, "<TEI") || !strings.Contains(out, "</TEI>") {
		t.Fatalf("XMLTEI() = %q; want a TEI-wrapped document", out)
	}
}

func TestXMLTEIValidationRejectsUnknownTag(t *testing.T) {
	d := sampleDoc()
	d.Body.SubElement("bogus-tag")

	if _, err := XMLTEI(d, true); err == nil {
		t.Fatal("expected an error for an out-of-vocabulary tag under strict validation")
	}
}

func TestXMLTEISkipsValidationWhenDisabled(t *testing.T) {
	d := sampleDoc()
	d.Body.SubElement("bogus-tag")

	if _, err := XMLTEI(d, false); err != nil {
		t.Fatalf("XMLTEI(validate=false) error: %v", err)
	}
}
