package service

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"songapi/internal/model"
	"songapi/internal/validation"
)

// songRecord is one NDJSON line of the song dataset.
type songRecord struct {
	ISRC        string     `json:"ISRC"`
	Title       string     `json:"song"`
	Album       string     `json:"Album"`
	ReleaseDate string     `json:"Release Date"`
	Genre       string     `json:"Genre"`
	Explicit    flexString `json:"Explicit"`
	Popularity  flexInt    `json:"Popularity"`
	Artists     string     `json:"Artist(s)"`
}

// flexString accepts any JSON scalar and keeps its text form.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	*f = flexString(bytes.TrimSpace(b))
	return nil
}

// flexInt accepts a JSON number or a quoted number. Anything else is zero.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexInt(int(n))
	return nil
}

var artistSeparator = regexp.MustCompile(`[;,]`)

func splitArtists(raw string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, name := range artistSeparator.Split(raw, -1) {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

var nonFiniteLiterals = [][]byte{[]byte("-Infinity"), []byte("Infinity"), []byte("NaN")}

// nullNonFinite rewrites bare NaN and Infinity literals outside JSON strings
// to null. The song dataset carries them in numeric columns.
func nullNonFinite(line []byte) []byte {
	if !bytes.Contains(line, []byte("NaN")) && !bytes.Contains(line, []byte("Infinity")) {
		return line
	}
	out := make([]byte, 0, len(line))
	inString, escaped := false, false
	for i := 0; i < len(line); {
		c := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			out = append(out, c)
			i++
			continue
		}
		if c == '"' {
			inString = true
			out = append(out, c)
			i++
			continue
		}
		replaced := false
		for _, lit := range nonFiniteLiterals {
			if bytes.HasPrefix(line[i:], lit) {
				out = append(out, "null"...)
				i += len(lit)
				replaced = true
				break
			}
		}
		if !replaced {
			out = append(out, c)
			i++
		}
	}
	return out
}

// parseSongLine decodes one dataset line. Lines that fail to decode or lack
// the natural key are rejected with an error.
func parseSongLine(line []byte) (*model.SongWithArtists, error) {
	var rec songRecord
	if err := json.Unmarshal(nullNonFinite(line), &rec); err != nil {
		return nil, err
	}
	if err := validation.Validate(
		validation.Field("ISRC", rec.ISRC, validation.NotBlank(), validation.Length(1, 64)),
		validation.Field("song", rec.Title, validation.NotBlank(), validation.Length(1, 1024)),
	).Err(); err != nil {
		return nil, err
	}

	song := model.Song{
		ISRC:        strings.TrimSpace(rec.ISRC),
		Title:       rec.Title,
		Album:       rec.Album,
		ReleaseDate: ParseReleaseDate(rec.ReleaseDate),
		Genre:       rec.Genre,
		Explicit:    strings.EqualFold(strings.TrimSpace(string(rec.Explicit)), "yes"),
		Popularity:  int(rec.Popularity),
	}
	if song.ReleaseDate != nil {
		y := song.ReleaseDate.Year()
		song.ReleaseYear = &y
	}
	return &model.SongWithArtists{Song: song, Artists: splitArtists(rec.Artists)}, nil
}
