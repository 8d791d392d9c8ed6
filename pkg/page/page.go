// Package page owns the gallery document: a parsed HTML tree whose gallery
// grid and detail modal are driven from Go.
package page

import (
	"bytes"
	_ "embed"
	"io"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed template/index.html
var indexTemplate []byte

var ErrMissingElement = errors.New("page template is missing an element")

// Document is one gallery page. Its components are looked up once in New and
// share the same node tree.
type Document struct {
	doc *goquery.Document

	caption   *goquery.Selection
	startDate *goquery.Selection
	loading   *goquery.Selection

	Gallery *Gallery
	Detail  *DetailView
}

type Options struct {
	// Template replaces the embedded page. It must carry the same ids.
	Template []byte
	// Thumbnails picks card images.
	Thumbnails ThumbnailResolver
}

func New(opt Options) (*Document, error) {
	tpl := opt.Template
	if len(tpl) == 0 {
		tpl = indexTemplate
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(tpl))
	if err != nil {
		return nil, errors.Wrap(err, "parse page template")
	}

	d := &Document{doc: doc}
	if d.caption, err = one(doc, "#caption"); err != nil {
		return nil, err
	}
	if d.startDate, err = one(doc, "#startDate"); err != nil {
		return nil, err
	}
	if d.loading, err = one(doc, "#loadingMsg"); err != nil {
		return nil, err
	}
	if d.Detail, err = newDetailView(doc); err != nil {
		return nil, err
	}
	if d.Gallery, err = newGallery(doc, opt.Thumbnails, d.Detail); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Document) SetCaption(s string) {
	d.caption.SetText(s)
}

// SetStartDate fills the date picker.
func (d *Document) SetStartDate(value string) {
	d.startDate.SetAttr("value", value)
}

func (d *Document) ShowLoading(msg string) {
	d.loading.SetText(msg)
	setDisplay(d.loading, "block")
}

func (d *Document) HideLoading() {
	setDisplay(d.loading, "none")
}

// Find exposes the tree for callers that need to inspect it.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.doc.Nodes[0])
}

func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

func one(doc *goquery.Document, selector string) (*goquery.Selection, error) {
	sel := doc.Find(selector)
	if sel.Length() != 1 {
		return nil, errors.Wrapf(ErrMissingElement, "%s matched %d elements", selector, sel.Length())
	}
	return sel, nil
}

func setDisplay(sel *goquery.Selection, display string) {
	sel.SetAttr("style", "display:"+display)
}

func element(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

func textElement(tag, text string, attrs ...string) *html.Node {
	n := element(tag, attrs...)
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return n
}
