package xmltv

import (
	"compress/gzip"
	"encoding/xml"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
)

// timestampLayout is the XMLTV programme timestamp: zone offset, not name.
const timestampLayout = "20060102150405 -0700"

// fallbackCategory replaces a blank category at emission.
const fallbackCategory = "Unknown"

// ExportError reports a failure producing the XMLTV structure.
type ExportError struct {
	Msg string
}

func (e *ExportError) Error() string { return e.Msg }

// ChannelMeta carries the fixed channel and generator metadata of the feed.
type ChannelMeta struct {
	ID             string
	Name           string
	URL            string
	Language       string
	GeneratorName  string
	SourceInfoURL  string
	SourceInfoName string
	SourceDataURL  string
}

// TV is the document root.
type TV struct {
	XMLName           xml.Name    `xml:"tv"`
	GeneratorInfoName string      `xml:"generator-info-name,attr,omitempty"`
	SourceInfoURL     string      `xml:"source-info-url,attr,omitempty"`
	SourceInfoName    string      `xml:"source-info-name,attr,omitempty"`
	SourceDataURL     string      `xml:"source-data-url,attr,omitempty"`
	Channels          []Channel   `xml:"channel"`
	Programmes        []Programme `xml:"programme"`
}

type Channel struct {
	ID          string `xml:"id,attr"`
	DisplayName string `xml:"display-name"`
	URL         string `xml:"url,omitempty"`
}

type Programme struct {
	Start      string      `xml:"start,attr"`
	Stop       string      `xml:"stop,attr"`
	Channel    string      `xml:"channel,attr"`
	Title      LangText    `xml:"title"`
	Desc       LangText    `xml:"desc"`
	Category   LangText    `xml:"category"`
	EpisodeNum *EpisodeNum `xml:"episode-num,omitempty"`
}

// LangText is a language-tagged text element.
type LangText struct {
	Lang  string `xml:"lang,attr"`
	Value string `xml:",chardata"`
}

type EpisodeNum struct {
	System string `xml:"system,attr"`
	Value  string `xml:",chardata"`
}

// Convert serializes the internal projection into the XMLTV structure: one
// channel element and one programme per entry in sequence order. Entries
// whose instants failed to derive are skipped with a logged warning; this is
// the one place partial success is tolerated.
func Convert(entries []schedule.Entry, meta ChannelMeta) (*TV, error) {
	logger := zap.L()

	if len(entries) == 0 {
		return nil, &ExportError{Msg: "schedule has no entries to export"}
	}
	if meta.ID == "" {
		return nil, &ExportError{Msg: "channel id is not configured"}
	}

	tv := &TV{
		GeneratorInfoName: meta.GeneratorName,
		SourceInfoURL:     meta.SourceInfoURL,
		SourceInfoName:    meta.SourceInfoName,
		SourceDataURL:     meta.SourceDataURL,
		Channels: []Channel{{
			ID:          meta.ID,
			DisplayName: meta.Name,
			URL:         meta.URL,
		}},
		Programmes: make([]Programme, 0, len(entries)),
	}

	for i, e := range entries {
		if e.Start.IsZero() || e.Stop.IsZero() {
			logger.Warn("Entry skipped due to missing start/stop times.",
				zap.Int("row", i), zap.String("title", e.Title))
			continue
		}

		category := e.Category
		if category == "" {
			category = fallbackCategory
		}

		p := Programme{
			Start:    e.Start.Format(timestampLayout),
			Stop:     e.Stop.Format(timestampLayout),
			Channel:  meta.ID,
			Title:    LangText{Lang: meta.Language, Value: e.Title},
			Desc:     LangText{Lang: meta.Language, Value: e.Desc},
			Category: LangText{Lang: meta.Language, Value: category},
		}
		if e.EpisodeNum != "" {
			p.EpisodeNum = &EpisodeNum{System: "onscreen", Value: e.EpisodeNum}
		}
		tv.Programmes = append(tv.Programmes, p)
	}

	return tv, nil
}

// Write emits the document with an XML declaration in UTF-8.
func Write(tv *TV, w io.Writer) error {
	data, err := xml.MarshalIndent(tv, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal xmltv: %w", err)
	}
	if _, err = io.WriteString(w, xml.Header); err != nil {
		return err
	}
	if _, err = w.Write(data); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// WriteGzip emits the same bytes gzip-compressed.
func WriteGzip(tv *TV, w io.Writer) error {
	gz := gzip.NewWriter(w)
	if err := Write(tv, gz); err != nil {
		_ = gz.Close()
		return err
	}
	return gz.Close()
}
