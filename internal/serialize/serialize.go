// Package serialize implements the output-format collaborators from spec
// §6: native, plain text, CSV, JSON, generic XML, and TEI-XML. The txt
// format's "formatting markers as Markdown when include_formatting" is
// backed by JohannesKaufmann/html-to-markdown, converting a small HTML
// rendering of the output vocabulary rather than hand-rolling a Markdown
// writer.
package serialize

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	md "github.com/JohannesKaufmann/html-to-markdown"

	"github.com/jrmoran/xtractly/internal/etree"
)

// Document mirrors spec §3's "extraction result object", scoped to what the
// serializers need. The root package builds one from its own Document type
// before calling into this package, keeping internal/serialize free of a
// dependency on the public API types.
type Document struct {
	Title        string
	Author       string
	Date         time.Time
	URL          string
	Hostname     string
	Description  string
	Categories   []string
	Tags         []string
	Fingerprint  string
	ID           string
	License      string
	Body         *etree.Element
	CommentsBody *etree.Element
}

// Text implements the plain-text serializer.
func Text(d Document, includeFormatting bool) string {
	if !includeFormatting {
		return flatten(d)
	}
	html := toHTML(d.Body)
	out, err := md.ConvertString(html)
	if err != nil {
		return flatten(d)
	}
	out = strings.TrimSpace(out)
	if d.CommentsBody != nil {
		commentsHTML := toHTML(d.CommentsBody)
		if commentsMD, err := md.ConvertString(commentsHTML); err == nil {
			out += "\n\n" + strings.TrimSpace(commentsMD)
		}
	}
	return out
}

func flatten(d Document) string {
	out := etree.IterText(d.Body, " ")
	if d.CommentsBody != nil {
		if c := etree.IterText(d.CommentsBody, " "); c != "" {
			out += "\n\n" + c
		}
	}
	return out
}

// CSV implements the tab-separated text+metadata serializer.
func CSV(d Document) string {
	fields := []string{
		d.Title, d.Author, dateStr(d.Date), d.URL, d.Hostname,
		strings.Join(d.Categories, ","), strings.Join(d.Tags, ","),
		flatten(d),
	}
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(strings.ReplaceAll(f, "\t", " "), "\n", " ")
	}
	return strings.Join(fields, "\t")
}

type jsonDocument struct {
	Title       string   `json:"title"`
	Author      string   `json:"author,omitempty"`
	Date        string   `json:"date,omitempty"`
	URL         string   `json:"url,omitempty"`
	Hostname    string   `json:"hostname,omitempty"`
	Description string   `json:"description,omitempty"`
	Categories  []string `json:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	ID          string   `json:"id,omitempty"`
	License     string   `json:"license,omitempty"`
	Text        string   `json:"text"`
	Comments    string   `json:"comments,omitempty"`
}

// JSON implements the metadata+body text serializer.
func JSON(d Document) (string, error) {
	jd := jsonDocument{
		Title: d.Title, Author: d.Author, Date: dateStr(d.Date),
		URL: d.URL, Hostname: d.Hostname, Description: d.Description,
		Categories: d.Categories, Tags: d.Tags, Fingerprint: d.Fingerprint,
		ID: d.ID, License: d.License, Text: etree.IterText(d.Body, " "),
	}
	if d.CommentsBody != nil {
		jd.Comments = etree.IterText(d.CommentsBody, " ")
	}
	out, err := json.Marshal(jd)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// XML implements the generic XML serializer: the internal vocabulary tree,
// as-is, wrapped with a metadata header.
func XML(d Document) string {
	var sb strings.Builder
	sb.WriteString("<doc")
	writeAttr(&sb, "title", d.Title)
	writeAttr(&sb, "author", d.Author)
	writeAttr(&sb, "date", dateStr(d.Date))
	writeAttr(&sb, "url", d.URL)
	writeAttr(&sb, "hostname", d.Hostname)
	sb.WriteString(">\n")
	sb.WriteString(etree.ToString(d.Body))
	if d.CommentsBody != nil {
		sb.WriteString(etree.ToString(d.CommentsBody))
	}
	sb.WriteString("</doc>")
	return sb.String()
}

// teiTagMap maps the internal vocabulary onto TEI element names.
var teiTagMap = map[string]string{
	etree.Body: "body", etree.P: "p", etree.Head: "head", etree.Hi: "hi",
	etree.Ref: "ref", etree.List: "list", etree.Item: "item",
	etree.Table: "table", etree.Row: "row", etree.Cell: "cell",
	etree.Quote: "quote", etree.Code: "code", etree.Graphic: "graphic",
	etree.Lb: "lb", etree.Del: "del", etree.Fw: "fw",
}

// XMLTEI implements the TEI-XML serializer. When validate is set, it runs a
// shallow structural check (every element's tag has a TEI mapping) instead
// of a full schema validation, since no TEI schema is available in the
// retrieval pack.
func XMLTEI(d Document, validate bool) (string, error) {
	if validate {
		if err := validateTEI(d.Body); err != nil {
			return "", err
		}
	}
	var sb strings.Builder
	sb.WriteString(`<TEI xmlns="http://www.tei-c.org/ns/1.0">`)
	sb.WriteString("<teiHeader><fileDesc><titleStmt><title>")
	sb.WriteString(escape(d.Title))
	sb.WriteString("</title>")
	if d.Author != "" {
		sb.WriteString("<author>" + escape(d.Author) + "</author>")
	}
	sb.WriteString("</titleStmt></fileDesc></teiHeader>")
	sb.WriteString("<text><body>")
	writeTEI(&sb, d.Body)
	sb.WriteString("</body>")
	if d.CommentsBody != nil {
		sb.WriteString(`<div type="comments">`)
		writeTEI(&sb, d.CommentsBody)
		sb.WriteString("</div>")
	}
	sb.WriteString("</text></TEI>")
	return sb.String(), nil
}

func validateTEI(e *etree.Element) error {
	if e.Tag() != etree.Body {
		if _, ok := teiTagMap[e.Tag()]; !ok {
			return fmt.Errorf("serialize: tag %q has no TEI mapping", e.Tag())
		}
	}
	for _, c := range e.Children() {
		if err := validateTEI(c); err != nil {
			return err
		}
	}
	return nil
}

func writeTEI(sb *strings.Builder, e *etree.Element) {
	for _, c := range e.Children() {
		tag, ok := teiTagMap[c.Tag()]
		if !ok {
			tag = c.Tag()
		}
		sb.WriteString("<" + tag)
		if c.Tag() == etree.Ref {
			if t, ok := c.Attr("target"); ok {
				sb.WriteString(` target="` + escape(t) + `"`)
			}
		}
		if c.Tag() == etree.Graphic {
			if s, ok := c.Attr("src"); ok {
				sb.WriteString(` url="` + escape(s) + `"`)
			}
		}
		sb.WriteString(">")
		sb.WriteString(escape(c.Text()))
		writeTEI(sb, c)
		sb.WriteString("</" + tag + ">")
		sb.WriteString(escape(c.Tail()))
	}
}

func writeAttr(sb *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	sb.WriteString(" " + key + `="` + escape(value) + `"`)
}

func dateStr(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// toHTML renders an output-vocabulary element as a small HTML fragment, the
// input html-to-markdown expects.
func toHTML(e *etree.Element) string {
	var sb strings.Builder
	writeHTML(&sb, e)
	return sb.String()
}

var htmlTagMap = map[string]string{
	etree.P: "p", etree.List: "ul", etree.Item: "li",
	etree.Table: "table", etree.Row: "tr", etree.Cell: "td",
	etree.Quote: "blockquote", etree.Code: "pre", etree.Lb: "br",
	etree.Del: "del",
}

func writeHTML(sb *strings.Builder, e *etree.Element) {
	sb.WriteString(escape(e.Text()))
	for _, c := range e.Children() {
		tag := htmlElementTag(c)
		sb.WriteString("<" + tag + htmlAttrs(c) + ">")
		writeHTML(sb, c)
		sb.WriteString("</" + tag + ">")
		sb.WriteString(escape(c.Tail()))
	}
}

func htmlElementTag(c *etree.Element) string {
	switch c.Tag() {
	case etree.Head:
		rend := c.AttrOr("rend", "h2")
		if _, ok := map[string]bool{"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true}[rend]; ok {
			return rend
		}
		return "h2"
	case etree.Hi:
		switch c.AttrOr("rend", "") {
		case "italic":
			return "i"
		case "underline":
			return "u"
		default:
			return "b"
		}
	case etree.Ref:
		return "a"
	case etree.Graphic:
		return "img"
	}
	if tag, ok := htmlTagMap[c.Tag()]; ok {
		return tag
	}
	return "span"
}

func htmlAttrs(c *etree.Element) string {
	switch c.Tag() {
	case etree.Ref:
		if t, ok := c.Attr("target"); ok {
			return ` href="` + escape(t) + `"`
		}
	case etree.Graphic:
		if s, ok := c.Attr("src"); ok {
			return ` src="` + escape(s) + `"`
		}
	case etree.Cell:
		if role, ok := c.Attr("role"); ok && role == "head" {
			return ` scope="col"`
		}
	}
	return ""
}
