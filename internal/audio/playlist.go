package audio

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/handiism/bandcamp-player/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
//
// Each format has different features and compatibility:
//   - M3U: Simple text format, widely supported
//   - PLS: INI-style format, used by Winamp
//   - WPL: XML format, Windows Media Player
//   - ZPL: XML format, Zune/Groove Music
//
// M3U and PLS can be read back; WPL and ZPL are write-only.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for artist/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS

	// FormatWPL creates .wpl files (Windows Media Player).
	FormatWPL

	// FormatZPL creates .zpl files (Zune/Groove Music).
	FormatZPL
)

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	switch f {
	case FormatPLS:
		return ".pls"
	case FormatWPL:
		return ".wpl"
	case FormatZPL:
		return ".zpl"
	default:
		return ".m3u"
	}
}

// FormatFromName picks the playlist format from a file name or a bare
// format name ("m3u", "pls", ...). Unknown names fall back to M3U.
func FormatFromName(name string) PlaylistFormat {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
	if ext == "" {
		ext = strings.ToLower(name)
	}
	switch ext {
	case "pls":
		return FormatPLS
	case "wpl":
		return FormatWPL
	case "zpl":
		return FormatZPL
	default:
		return FormatM3U
	}
}

// PlaylistCreator generates playlist files in various formats.
//
// Entries are written with the track's file ID as the location, so a
// playlist saved at the library root resolves against the same asset
// store it was created from.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist("Road Trip", tracks)
//	os.WriteFile("road-trip.m3u", []byte(content), 0644)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:-1,Artist - Song Title
//	// Album/01 Song Title.mp3
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF/EXTIMG lines
}

// NewPlaylistCreator creates a new PlaylistCreator.
//
// Parameters:
//   - format: The playlist format to generate
//   - extended: For M3U format, whether to include #EXTINF lines
//     (ignored for other formats)
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// CreatePlaylist generates playlist content for tracks.
func (p *PlaylistCreator) CreatePlaylist(title string, tracks []model.Track) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(tracks)
	case FormatWPL:
		return p.createWPL(title, tracks)
	case FormatZPL:
		return p.createZPL(title, tracks)
	default:
		return p.createM3U(tracks)
	}
}

// createM3U generates an M3U playlist.
//
// Durations are not known without decoding, so EXTINF carries -1.
// The cover ID travels in an #EXTIMG line.
func (p *PlaylistCreator) createM3U(tracks []model.Track) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for _, track := range tracks {
		if p.extended {
			sb.WriteString(fmt.Sprintf("#EXTINF:-1,%s\n", track.DisplayName()))
			if track.HasCover() {
				sb.WriteString(fmt.Sprintf("#EXTIMG:%s\n", track.CoverID))
			}
		}
		sb.WriteString(track.FileID + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=Album/01 Song.mp3
//	Title1=Artist - Song
//	Length1=-1
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range tracks {
		idx := i + 1
		sb.WriteString(fmt.Sprintf("File%d=%s\n", idx, track.FileID))
		sb.WriteString(fmt.Sprintf("Title%d=%s\n", idx, track.DisplayName()))
		sb.WriteString(fmt.Sprintf("Length%d=-1\n", idx))
	}

	sb.WriteString(fmt.Sprintf("NumberOfEntries=%d\n", len(tracks)))
	sb.WriteString("Version=2\n")

	return sb.String()
}

// createWPL generates a Windows Media Player playlist.
func (p *PlaylistCreator) createWPL(title string, tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("<?wpl version=\"1.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\"/>\n", escapeXML(track.FileID)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// createZPL generates a Zune/Groove Music playlist with track metadata.
func (p *PlaylistCreator) createZPL(title string, tracks []model.Track) string {
	var sb strings.Builder

	sb.WriteString("<?zpl version=\"2.0\"?>\n")
	sb.WriteString("<smil>\n")
	sb.WriteString("  <head>\n")
	sb.WriteString(fmt.Sprintf("    <title>%s</title>\n", escapeXML(title)))
	sb.WriteString("    <meta name=\"Generator\" content=\"BandcampPlayer\"/>\n")
	sb.WriteString(fmt.Sprintf("    <meta name=\"ItemCount\" content=\"%d\"/>\n", len(tracks)))
	sb.WriteString("  </head>\n")
	sb.WriteString("  <body>\n")
	sb.WriteString("    <seq>\n")

	for _, track := range tracks {
		sb.WriteString(fmt.Sprintf("      <media src=\"%s\" trackTitle=\"%s\" trackArtist=\"%s\"/>\n",
			escapeXML(track.FileID),
			escapeXML(track.Title),
			escapeXML(track.Artist)))
	}

	sb.WriteString("    </seq>\n")
	sb.WriteString("  </body>\n")
	sb.WriteString("</smil>\n")

	return sb.String()
}

// ParsePlaylist reads tracks from an M3U or PLS playlist.
//
// Locations become file IDs with forward slashes. Titles and artists
// come from EXTINF/Title entries written as "Artist - Title"; entries
// without them get a title derived from the file name.
func ParsePlaylist(r io.Reader, format PlaylistFormat) ([]model.Track, error) {
	switch format {
	case FormatM3U:
		return parseM3U(r)
	case FormatPLS:
		return parsePLS(r)
	default:
		return nil, fmt.Errorf("reading %s playlists is not supported", format.Extension())
	}
}

func parseM3U(r io.Reader) ([]model.Track, error) {
	var (
		tracks        []model.Track
		title, artist string
		cover         string
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXTINF:"):
			info := strings.TrimPrefix(line, "#EXTINF:")
			if _, name, ok := strings.Cut(info, ","); ok {
				artist, title = splitDisplayName(name)
			}
		case strings.HasPrefix(line, "#EXTIMG:"):
			cover = strings.TrimSpace(strings.TrimPrefix(line, "#EXTIMG:"))
		case strings.HasPrefix(line, "#"):
			continue
		default:
			tracks = append(tracks, model.NewTrack(title, artist, toFileID(line), cover))
			title, artist, cover = "", "", ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return tracks, nil
}

func parsePLS(r io.Reader) ([]model.Track, error) {
	files := make(map[int]string)
	titles := make(map[int]string)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(scanner.Text()), "=")
		if !ok {
			continue
		}
		lower := strings.ToLower(key)
		switch {
		case strings.HasPrefix(lower, "file"):
			if n, err := strconv.Atoi(lower[len("file"):]); err == nil {
				files[n] = value
			}
		case strings.HasPrefix(lower, "title"):
			if n, err := strconv.Atoi(lower[len("title"):]); err == nil {
				titles[n] = value
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	indices := make([]int, 0, len(files))
	for n := range files {
		indices = append(indices, n)
	}
	sort.Ints(indices)

	tracks := make([]model.Track, 0, len(indices))
	for _, n := range indices {
		artist, title := splitDisplayName(titles[n])
		tracks = append(tracks, model.NewTrack(title, artist, toFileID(files[n]), ""))
	}
	return tracks, nil
}

// toFileID normalizes a playlist location to a slash-separated file ID.
func toFileID(location string) string {
	return strings.ReplaceAll(strings.TrimSpace(location), "\\", "/")
}

// splitDisplayName splits "Artist - Title" at the first separator.
func splitDisplayName(name string) (artist, title string) {
	name = strings.TrimSpace(name)
	if a, t, ok := strings.Cut(name, " - "); ok {
		return strings.TrimSpace(a), strings.TrimSpace(t)
	}
	return "", name
}

// escapeXML escapes special XML characters in a string.
//
// Replaces: & < > " '
// With:     &amp; &lt; &gt; &quot; &apos;
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
