package page

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/yinyajiang/apod-gallery/model"
)

const (
	embedID    = "modalIframe"
	embedAllow = "accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture; web-share"
)

type DetailState int

const (
	DetailClosed DetailState = iota
	DetailOpen
)

func (s DetailState) String() string {
	if s == DetailOpen {
		return "open"
	}
	return "closed"
}

// DetailView is the modal showing one record. It starts closed and holds at
// most one embedded player.
type DetailView struct {
	modal     *goquery.Selection
	content   *goquery.Selection
	info      *goquery.Selection
	image     *goquery.Selection
	title     *goquery.Selection
	date      *goquery.Selection
	desc      *goquery.Selection
	copyright *goquery.Selection
	closeCtl  *goquery.Selection

	state  DetailState
	record model.MediaRecord
}

func newDetailView(doc *goquery.Document) (*DetailView, error) {
	v := &DetailView{}
	for _, f := range []struct {
		sel  **goquery.Selection
		expr string
	}{
		{&v.modal, "#modal"},
		{&v.content, "#modal .modal-content"},
		{&v.info, "#modal .modal-info"},
		{&v.image, "#modalImg"},
		{&v.title, "#modalTitle"},
		{&v.date, "#modalDate"},
		{&v.desc, "#modalDesc"},
		{&v.copyright, "#modalCopyright"},
		{&v.closeCtl, "#modal .close"},
	} {
		sel, err := one(doc, f.expr)
		if err != nil {
			return nil, err
		}
		*f.sel = sel
	}
	return v, nil
}

func (v *DetailView) State() DetailState {
	return v.state
}

func (v *DetailView) IsOpen() bool {
	return v.state == DetailOpen
}

// Record is the record on display; it is the zero value while closed.
func (v *DetailView) Record() model.MediaRecord {
	return v.record
}

// Open shows rec, replacing whatever was on display.
func (v *DetailView) Open(rec model.MediaRecord) {
	v.removeEmbed()

	v.title.SetText(rec.Title)
	v.date.SetText(rec.Date)
	v.desc.SetText(rec.Explanation)
	if rec.Copyright != "" {
		v.copyright.SetText("© " + rec.Copyright)
	} else {
		v.copyright.SetText("")
	}

	if rec.IsImage() {
		setDisplay(v.image, "block")
		v.image.SetAttr("src", rec.DisplayURL())
		v.image.SetAttr("alt", rec.Title)
	} else {
		setDisplay(v.image, "none")
		v.image.SetAttr("src", "")
		v.image.SetAttr("alt", "")
		v.info.BeforeNodes(embed(rec))
	}

	setDisplay(v.modal, "flex")
	v.state = DetailOpen
	v.record = rec
}

// Close hides the modal and clears every field so nothing stale remains.
func (v *DetailView) Close() {
	setDisplay(v.modal, "none")
	v.removeEmbed()
	setDisplay(v.image, "block")
	v.image.SetAttr("src", "")
	v.image.SetAttr("alt", "")
	v.title.SetText("")
	v.date.SetText("")
	v.desc.SetText("")
	v.copyright.SetText("")
	v.state = DetailClosed
	v.record = model.MediaRecord{}
}

// HandleClick closes the view when target is the close control or the
// overlay itself. Clicks inside the content are ignored.
func (v *DetailView) HandleClick(target *html.Node) bool {
	if target == nil || !v.IsOpen() {
		return false
	}
	if target == v.closeCtl.Get(0) || target == v.modal.Get(0) {
		v.Close()
		return true
	}
	return false
}

// Embed returns the injected player, if any.
func (v *DetailView) Embed() *goquery.Selection {
	return v.content.Find("#" + embedID)
}

func (v *DetailView) removeEmbed() {
	v.Embed().Remove()
}

func embed(rec model.MediaRecord) *html.Node {
	return element("iframe",
		"id", embedID,
		"src", rec.URL,
		"title", rec.Title,
		"width", "100%",
		"height", "480",
		"frameborder", "0",
		"allow", embedAllow,
		"allowfullscreen", "",
	)
}
