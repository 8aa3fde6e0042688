package xmltv

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oslobodiboze/RASPOREDnew/internal/app/schedule"
)

func testMeta() ChannelMeta {
	return ChannelMeta{
		ID:            "diadora-tv",
		Name:          "DiadoraTV",
		Language:      "hr",
		GeneratorName: "DiadoraXMLTV/2.0.0.3",
	}
}

func testEntries(t *testing.T) []schedule.Entry {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Zagreb")
	require.NoError(t, err)
	return []schedule.Entry{
		{
			Start:      time.Date(2024, 3, 5, 20, 0, 0, 0, loc),
			Stop:       time.Date(2024, 3, 5, 20, 30, 0, 0, loc),
			Title:      "News",
			Desc:       "Daily news",
			Category:   "Info",
			EpisodeNum: "12",
		},
		{
			Start: time.Date(2024, 3, 5, 20, 30, 0, 0, loc),
			Stop:  time.Date(2024, 3, 6, 7, 0, 0, 0, loc),
			Title: "Movie",
		},
	}
}

func TestConvert(t *testing.T) {
	tv, err := Convert(testEntries(t), testMeta())
	require.NoError(t, err)

	require.Len(t, tv.Channels, 1)
	assert.Equal(t, "diadora-tv", tv.Channels[0].ID)
	assert.Equal(t, "DiadoraTV", tv.Channels[0].DisplayName)
	assert.Equal(t, "DiadoraXMLTV/2.0.0.3", tv.GeneratorInfoName)

	require.Len(t, tv.Programmes, 2)
	first := tv.Programmes[0]
	assert.Equal(t, "20240305200000 +0100", first.Start)
	assert.Equal(t, "20240305203000 +0100", first.Stop)
	assert.Equal(t, "diadora-tv", first.Channel)
	assert.Equal(t, LangText{Lang: "hr", Value: "News"}, first.Title)
	assert.Equal(t, LangText{Lang: "hr", Value: "Daily news"}, first.Desc)
	assert.Equal(t, LangText{Lang: "hr", Value: "Info"}, first.Category)
	require.NotNil(t, first.EpisodeNum)
	assert.Equal(t, "onscreen", first.EpisodeNum.System)
	assert.Equal(t, "12", first.EpisodeNum.Value)

	// Each programme stop matches the next start.
	assert.Equal(t, first.Stop, tv.Programmes[1].Start)
}

func TestConvertBlankOptionalFields(t *testing.T) {
	tv, err := Convert(testEntries(t), testMeta())
	require.NoError(t, err)

	second := tv.Programmes[1]
	assert.Equal(t, "Unknown", second.Category.Value)
	assert.Equal(t, "hr", second.Desc.Lang)
	assert.Equal(t, "", second.Desc.Value)
	assert.Nil(t, second.EpisodeNum)
}

func TestConvertSummerOffset(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Zagreb")
	require.NoError(t, err)

	tv, err := Convert([]schedule.Entry{{
		Start: time.Date(2024, 7, 1, 20, 0, 0, 0, loc),
		Stop:  time.Date(2024, 7, 2, 7, 0, 0, 0, loc),
		Title: "Summer show",
	}}, testMeta())
	require.NoError(t, err)
	assert.Equal(t, "20240701200000 +0200", tv.Programmes[0].Start)
}

func TestConvertSkipsEntriesWithoutInstants(t *testing.T) {
	entries := testEntries(t)
	entries = append(entries, schedule.Entry{Title: "Orphan"})

	tv, err := Convert(entries, testMeta())
	require.NoError(t, err)
	assert.Len(t, tv.Programmes, 2)
}

func TestConvertErrors(t *testing.T) {
	var exportErr *ExportError

	_, err := Convert(nil, testMeta())
	require.ErrorAs(t, err, &exportErr)

	meta := testMeta()
	meta.ID = ""
	_, err = Convert(testEntries(t), meta)
	require.ErrorAs(t, err, &exportErr)
}

func TestWrite(t *testing.T) {
	tv, err := Convert(testEntries(t), testMeta())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(tv, &buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<tv generator-info-name="DiadoraXMLTV/2.0.0.3">`)
	assert.Contains(t, out, `<channel id="diadora-tv">`)
	assert.Contains(t, out, `<title lang="hr">News</title>`)
	assert.Contains(t, out, `<episode-num system="onscreen">12</episode-num>`)
	assert.True(t, strings.HasSuffix(out, "</tv>\n"))
}

func TestWriteGzip(t *testing.T) {
	tv, err := Convert(testEntries(t), testMeta())
	require.NoError(t, err)

	var plain, packed bytes.Buffer
	require.NoError(t, Write(tv, &plain))
	require.NoError(t, WriteGzip(tv, &packed))

	gz, err := gzip.NewReader(&packed)
	require.NoError(t, err)
	unpacked, err := io.ReadAll(gz)
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	assert.Equal(t, plain.Bytes(), unpacked)
}
