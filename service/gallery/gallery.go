package gallery

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/yinyajiang/apod-gallery/model"
	"github.com/yinyajiang/apod-gallery/pkg/common"
	"github.com/yinyajiang/apod-gallery/pkg/datasource"
	"github.com/yinyajiang/apod-gallery/pkg/ies"
	_ "github.com/yinyajiang/apod-gallery/pkg/ies/youtube"
	"github.com/yinyajiang/apod-gallery/pkg/page"
	"github.com/yinyajiang/apod-gallery/pkg/selector"
	"github.com/yinyajiang/apod-gallery/pkg/thumbnail"
)

const IndexFile = "index.html"

type Status int

const (
	StatusOK Status = iota + 1
	StatusEmpty
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusError:
		return "error"
	}
	return "unknown"
}

// Result is the outcome of one Load.
type Result struct {
	ID      string
	Status  Status
	Records []model.MediaRecord
	Err     error
}

// Source provides the dataset.
type Source interface {
	Fetch(ctx context.Context) ([]model.MediaRecord, error)
}

type GalleryOption struct {
	DataURL string
	Proxy   string
	Timeout time.Duration
	IEToken ies.IETokens

	// Source overrides the HTTP data source built from DataURL.
	Source Source
	// Thumbnails overrides the resolver built from the registered extractors.
	Thumbnails page.ThumbnailResolver
	// Now overrides the clock used for the default start date.
	Now func() time.Time
}

// Gallery runs selection-and-render cycles against one page. It is meant to
// be driven from a single goroutine: overlapping Loads are not ordered and
// whichever renders last wins.
type Gallery struct {
	source Source
	doc    *page.Document
	now    func() time.Time
	log    *logrus.Entry
}

func NewGallery(opt GalleryOption) (*Gallery, error) {
	source := opt.Source
	if source == nil {
		client, err := datasource.New(datasource.Options{
			URL:     opt.DataURL,
			Proxy:   opt.Proxy,
			Timeout: opt.Timeout,
		})
		if err != nil {
			return nil, err
		}
		source = client
	}

	thumbs := opt.Thumbnails
	if thumbs == nil {
		if err := ies.InitIE(opt.IEToken); err != nil {
			return nil, err
		}
		thumbs = thumbnail.New()
	}

	doc, err := page.New(page.Options{Thumbnails: thumbs})
	if err != nil {
		return nil, err
	}

	now := opt.Now
	if now == nil {
		now = time.Now
	}
	return &Gallery{
		source: source,
		doc:    doc,
		now:    now,
		log:    logrus.WithField("component", "gallery"),
	}, nil
}

func (g *Gallery) Document() *page.Document {
	return g.doc
}

// Load fetches the dataset, selects from it and renders the result. Failures
// end up on the page and in Result; they are never returned.
func (g *Gallery) Load(ctx context.Context, opt selector.Options) *Result {
	res := &Result{ID: uuid.New().String()}
	log := g.log.WithField("cycle", res.ID)

	g.prepareControls(opt)
	g.doc.ShowLoading(common.LoadingMessage(common.RandomSpaceFact()))
	g.doc.Gallery.Clear()
	defer g.doc.HideLoading()

	records, err := g.source.Fetch(ctx)
	if err == nil {
		records, err = selector.Select(records, opt, g.now())
	}
	if err != nil {
		log.WithError(err).WithField("format_error", datasource.IsFormatError(err)).Error("loading gallery failed")
		g.doc.Gallery.RenderError(page.MsgError)
		res.Status, res.Err = StatusError, err
		return res
	}

	res.Records = records
	if len(records) == 0 {
		g.doc.Gallery.RenderEmpty(page.MsgEmpty)
		res.Status = StatusEmpty
	} else {
		g.doc.Gallery.Render(ctx, records)
		res.Status = StatusOK
	}
	log.WithFields(logrus.Fields{
		"count":  len(records),
		"videos": model.MediaRecordList(records).HasVideo(),
		"status": res.Status,
	}).Info("gallery rendered")
	return res
}

func (g *Gallery) prepareControls(opt selector.Options) {
	switch opt.Mode {
	case selector.ModeRange:
		start := opt.Start
		if start.IsZero() {
			start = selector.DefaultStart(g.now())
		}
		g.doc.SetStartDate(model.FormatDay(start))
		g.doc.SetCaption(model.FormatDay(start) + " to " + model.FormatDay(selector.RangeEnd(start)))
	default:
		g.doc.SetStartDate(model.FormatDay(selector.DefaultStart(g.now())))
		g.doc.SetCaption("The latest entries")
	}
}

// WriteSite writes one detail page per card and then the index, with the
// detail view closed.
func (g *Gallery) WriteSite(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	for _, card := range g.doc.Gallery.Cards() {
		if err := g.doc.Gallery.Activate(card.Node); err != nil {
			return err
		}
		if err := g.writeFile(filepath.Join(dir, card.Href)); err != nil {
			return err
		}
	}
	g.doc.Detail.Close()
	if err := g.writeFile(filepath.Join(dir, IndexFile)); err != nil {
		return err
	}
	g.log.WithFields(logrus.Fields{
		"dir":   dir,
		"pages": len(g.doc.Gallery.Cards()) + 1,
	}).Info("site written")
	return nil
}

func (g *Gallery) writeFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create page")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close page")
		}
	}()
	if err = g.doc.Render(f); err != nil {
		return errors.Wrapf(err, "render %s", path)
	}
	return nil
}
