package page

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"

	"github.com/yinyajiang/apod-gallery/model"
	"github.com/yinyajiang/apod-gallery/pkg/common"
)

const (
	MsgEmpty = "No results for this date range. Try another start date."
	MsgError = "Error loading data. Please try again later."
)

var ErrUnknownCard = errors.New("node is not a gallery card")

type ThumbnailResolver interface {
	Resolve(ctx context.Context, rec model.MediaRecord) string
}

// Card is a rendered gallery entry bound to its record.
type Card struct {
	Node   *html.Node
	Record model.MediaRecord
	// Href is the detail page the card links to.
	Href string
}

type Gallery struct {
	container  *goquery.Selection
	thumbnails ThumbnailResolver
	detail     *DetailView

	cards  []Card
	byNode map[*html.Node]int
}

func newGallery(doc *goquery.Document, thumbnails ThumbnailResolver, detail *DetailView) (*Gallery, error) {
	container, err := one(doc, "#gallery")
	if err != nil {
		return nil, err
	}
	return &Gallery{
		container:  container,
		thumbnails: thumbnails,
		detail:     detail,
		byNode:     make(map[*html.Node]int),
	}, nil
}

// Clear drops every card and message from the grid.
func (g *Gallery) Clear() {
	g.container.Empty()
	g.cards = nil
	g.byNode = make(map[*html.Node]int)
}

// Render replaces the grid content with one card per item, in order.
func (g *Gallery) Render(ctx context.Context, items []model.MediaRecord) {
	g.Clear()
	used := make(map[string]int, len(items))
	for _, item := range items {
		href := detailHref(item, used)
		card := g.card(ctx, item, href)
		g.container.AppendNodes(card)
		g.byNode[card] = len(g.cards)
		g.cards = append(g.cards, Card{
			Node:   card,
			Record: item,
			Href:   href,
		})
	}
}

func (g *Gallery) RenderEmpty(msg string) {
	g.Clear()
	g.container.AppendNodes(textElement("p", msg, "class", "empty"))
}

func (g *Gallery) RenderError(msg string) {
	g.Clear()
	g.container.AppendNodes(textElement("p", msg, "class", "error"))
}

func (g *Gallery) Cards() []Card {
	return append([]Card(nil), g.cards...)
}

// Activate opens the detail view for the card holding node.
func (g *Gallery) Activate(node *html.Node) error {
	for n := node; n != nil; n = n.Parent {
		if i, ok := g.byNode[n]; ok {
			g.detail.Open(g.cards[i].Record)
			return nil
		}
	}
	return ErrUnknownCard
}

func (g *Gallery) card(ctx context.Context, item model.MediaRecord, href string) *html.Node {
	thumb := item.URL
	if g.thumbnails != nil {
		thumb = g.thumbnails.Resolve(ctx, item)
	}

	card := element("a", "class", "card", "href", href, "data-date", item.Date)
	card.AppendChild(element("img", "src", thumb, "alt", item.Title, "loading", "lazy"))

	info := element("div", "class", "card-info")
	info.AppendChild(textElement("h3", item.Title))
	info.AppendChild(textElement("p", item.Date))
	card.AppendChild(info)

	if item.IsVideo() {
		card.AppendChild(textElement("div", "▶", "class", "video-badge", "title", "video"))
	}
	return card
}

// detailHref names the detail page of item, suffixing repeated dates.
func detailHref(item model.MediaRecord, used map[string]int) string {
	stem := "apod-" + common.DateStem(item.Date)
	used[stem]++
	if n := used[stem]; n > 1 {
		stem = fmt.Sprintf("%s-%d", stem, n)
	}
	return stem + ".html"
}
