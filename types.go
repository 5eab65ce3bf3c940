package xtractly

import (
	"time"

	"github.com/jrmoran/xtractly/internal/etree"
	"github.com/jrmoran/xtractly/internal/serialize"
)

// Format names an output serialization (spec §6).
type Format string

// Output formats the native result can be serialized to.
const (
	FormatText Format = "txt"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
	FormatTEI  Format = "xmltei"
)

// Block is one paragraph of flattened text, mirroring the teacher's own
// plain-text block model.
type Block struct {
	Text string
}

// Document is the extraction result object from spec §3: editorial body
// and (optional) comments, plus the metadata fields the out-of-scope
// metadata extractor fills.
type Document struct {
	Title       string
	Author      string
	Date        time.Time
	URL         string
	Hostname    string
	Description string
	Categories  []string
	Tags        []string
	Fingerprint string
	ID          string
	License     string
	Lang        string

	// Text is the body's flattened text projection (spec §3's "raw-text").
	Text string
	// Comments is the detached comments region's flattened text, empty
	// when include_comments was false or no comments region was found.
	Comments string

	body         *etree.Element
	commentsBody *etree.Element
}

// HasComments reports whether a comments region was extracted.
func (d *Document) HasComments() bool {
	return d.commentsBody != nil
}

// PlainText splits Text into non-empty paragraph blocks, the same shape
// the teacher's Article.PlainText exposes.
func (d *Document) PlainText() []Block {
	if d.body == nil {
		return nil
	}
	var blocks []Block
	for _, p := range d.body.Children() {
		if t := etree.IterText(p, " "); t != "" {
			blocks = append(blocks, Block{Text: t})
		}
	}
	return blocks
}

// Serialize renders the document in format. validateTEI is only consulted
// for FormatTEI (spec §6's "optionally validated").
func (d *Document) Serialize(format Format, validateTEI bool) (string, error) {
	sd := serialize.Document{
		Title: d.Title, Author: d.Author, Date: d.Date, URL: d.URL,
		Hostname: d.Hostname, Description: d.Description, Categories: d.Categories,
		Tags: d.Tags, Fingerprint: d.Fingerprint, ID: d.ID, License: d.License,
		Body: d.body, CommentsBody: d.commentsBody,
	}
	switch format {
	case FormatText:
		return serialize.Text(sd, true), nil
	case FormatCSV:
		return serialize.CSV(sd), nil
	case FormatJSON:
		return serialize.JSON(sd)
	case FormatXML:
		return serialize.XML(sd), nil
	case FormatTEI:
		return serialize.XMLTEI(sd, validateTEI)
	default:
		return serialize.Text(sd, true), nil
	}
}
