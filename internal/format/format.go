// ABOUTME: Renders canonical records as pretty, compact, JSON, CSV, or quiet text.
// ABOUTME: Pure function of data and options; holds no decision logic.
package format

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/chirpsearch/chirp/internal/models"
)

// Mode selects the output rendering.
type Mode int

const (
	ModePretty Mode = iota
	ModeCompact
	ModeJSON
	ModeCSV
	ModeQuiet
)

// Options configure rendering. NoColor disables lipgloss styling in
// pretty mode; the other modes are never colored.
type Options struct {
	Mode    Mode
	NoColor bool
}

var (
	handleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	verifiedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("45"))
	metricStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	urlStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Underline(true)
	replyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))
)

// Render writes the result's records to w in the selected mode.
func Render(w io.Writer, res models.Result, opts Options) error {
	switch opts.Mode {
	case ModeJSON:
		return renderJSON(w, res.Tweets)
	case ModeCSV:
		return renderCSV(w, res.Tweets)
	case ModeQuiet:
		return renderQuiet(w, res.Tweets)
	case ModeCompact:
		return renderCompact(w, res.Tweets)
	default:
		return renderPretty(w, res.Tweets, opts.NoColor)
	}
}

// jsonTweet is the emitted JSON shape: the canonical record plus its
// derived url, regenerated at render time.
type jsonTweet struct {
	models.Tweet
	URL string `json:"url"`
}

func renderJSON(w io.Writer, tweets []models.Tweet) error {
	out := make([]jsonTweet, len(tweets))
	for i, tw := range tweets {
		out[i] = jsonTweet{Tweet: tw, URL: tw.URL()}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// csvHeader defines column order; text sits last so rows stay scannable.
var csvHeader = []string{
	"id", "username", "display_name", "verified", "created_at",
	"likes", "retweets", "replies", "views", "reply_to_id", "url", "text",
}

func renderCSV(w io.Writer, tweets []models.Tweet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, tw := range tweets {
		row := []string{
			tw.ID,
			tw.Author.Username,
			tw.Author.DisplayName,
			strconv.FormatBool(tw.Author.Verified),
			tw.CreatedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(tw.Metrics.Likes),
			strconv.Itoa(tw.Metrics.Retweets),
			strconv.Itoa(tw.Metrics.Replies),
			strconv.Itoa(tw.Metrics.Views),
			tw.ReplyToID,
			tw.URL(),
			tw.Text,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderQuiet(w io.Writer, tweets []models.Tweet) error {
	for _, tw := range tweets {
		if _, err := fmt.Fprintln(w, tw.URL()); err != nil {
			return err
		}
	}
	return nil
}

func renderCompact(w io.Writer, tweets []models.Tweet) error {
	for _, tw := range tweets {
		text := strings.ReplaceAll(tw.Text, "\n", " ")
		if _, err := fmt.Fprintf(w, "@%s: %s (%d likes)\n", tw.Author.Username, text, tw.Metrics.Likes); err != nil {
			return err
		}
	}
	return nil
}

func renderPretty(w io.Writer, tweets []models.Tweet, noColor bool) error {
	if len(tweets) == 0 {
		_, err := fmt.Fprintln(w, "No results.")
		return err
	}

	style := func(s lipgloss.Style, text string) string {
		if noColor {
			return text
		}
		return s.Render(text)
	}

	for _, tw := range tweets {
		var b strings.Builder

		b.WriteString(style(handleStyle, "@"+tw.Author.Username))
		if tw.Author.Verified {
			b.WriteString(" " + style(verifiedStyle, "✓"))
		}
		if tw.Author.DisplayName != "" {
			b.WriteString(" " + style(nameStyle, "("+tw.Author.DisplayName+")"))
		}
		b.WriteString(" " + style(metricStyle, tw.CreatedAt.Local().Format("2006-01-02 15:04")))
		if tw.ReplyToID != "" {
			b.WriteString(" " + style(replyStyle, "↳ reply to "+tw.ReplyToID))
		}
		b.WriteString("\n")
		b.WriteString(tw.Text)
		b.WriteString("\n")
		b.WriteString(style(metricStyle, fmt.Sprintf("♥ %d  ⟳ %d  💬 %d  👁 %d",
			tw.Metrics.Likes, tw.Metrics.Retweets, tw.Metrics.Replies, tw.Metrics.Views)))
		b.WriteString("\n")
		b.WriteString(style(urlStyle, tw.URL()))
		b.WriteString("\n\n")

		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
