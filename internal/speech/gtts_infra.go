package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	defaultGoogleTTSURL = "https://translate.google.com/translate_tts"
	googleChunkLimit    = 100
)

// GoogleTTSClient — бесплатный синтез Google Translate (тот же протокол, что у gTTS).
// Длинный текст режется на куски до 100 символов, mp3 склеиваются.
type GoogleTTSClient struct {
	endpoint string
	httpCli  *http.Client
}

func NewGoogleTTSClient(endpoint string) *GoogleTTSClient {
	if endpoint == "" {
		endpoint = defaultGoogleTTSURL
	}
	return &GoogleTTSClient{
		endpoint: endpoint,
		httpCli:  http.DefaultClient,
	}
}

func (c *GoogleTTSClient) Synthesize(ctx context.Context, text, languageCode string) ([]byte, error) {
	chunks := splitText(text, googleChunkLimit)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("nothing to synthesize")
	}

	var out bytes.Buffer
	for i, chunk := range chunks {
		if err := c.fetchChunk(ctx, &out, chunk, languageCode, i, len(chunks)); err != nil {
			return nil, fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
		}
	}
	return out.Bytes(), nil
}

func (c *GoogleTTSClient) fetchChunk(ctx context.Context, w io.Writer, chunk, lang string, idx, total int) error {
	q := url.Values{}
	q.Set("ie", "UTF-8")
	q.Set("q", chunk)
	q.Set("tl", lang)
	q.Set("total", strconv.Itoa(total))
	q.Set("idx", strconv.Itoa(idx))
	q.Set("textlen", strconv.Itoa(utf8.RuneCountInString(chunk)))
	q.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Referer", "http://translate.google.com/")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("google tts status %d: %s", resp.StatusCode, string(b))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("google tts: empty audio")
	}
	return nil
}

// splitText режет по знакам препинания, потом по словам, и склеивает
// соседние куски, пока влезают в limit.
func splitText(text string, limit int) []string {
	var pieces []string
	for _, sentence := range splitSentences(text) {
		pieces = append(pieces, splitWords(sentence, limit)...)
	}

	var out []string
	cur := ""
	for _, p := range pieces {
		if cur == "" {
			cur = p
			continue
		}
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(p) <= limit {
			cur += " " + p
			continue
		}
		out = append(out, cur)
		cur = p
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func splitSentences(text string) []string {
	var out []string
	var b strings.Builder
	flush := func() {
		if s := strings.TrimSpace(b.String()); s != "" {
			out = append(out, s)
		}
		b.Reset()
	}
	for _, r := range text {
		switch r {
		case '.', '!', '?', ';', ':', ',', '…':
			b.WriteRune(r)
			flush()
		case '\n', '\r':
			flush()
		default:
			b.WriteRune(r)
		}
	}
	flush()
	return out
}

func splitWords(s string, limit int) []string {
	if utf8.RuneCountInString(s) <= limit {
		return []string{s}
	}

	var out []string
	cur := ""
	for _, word := range strings.Fields(s) {
		for utf8.RuneCountInString(word) > limit {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			r := []rune(word)
			out = append(out, string(r[:limit]))
			word = string(r[limit:])
		}
		switch {
		case word == "":
		case cur == "":
			cur = word
		case utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= limit:
			cur += " " + word
		default:
			out = append(out, cur)
			cur = word
		}
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
