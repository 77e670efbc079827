package main

import (
	"errors"
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
)

const (
	mediaCSS  = "text/css"
	mediaJS   = "application/javascript"
	mediaHTML = "text/html"
)

var errUnsupported = errors.New("unsupported file type")

func main() {
	var (
		inputFile  = flag.String("input", "", "Input file path")
		outputFile = flag.String("output", "", "Output file path")
		fileType   = flag.String("type", "", "File type (css, js or html); guessed from the extension when empty")
		dist       = flag.String("dist", "", "Minify templates/ and static/ into this directory")
	)
	flag.Parse()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	m := newMinifier()

	if *dist != "" {
		stats, err := buildDist(m, []string{"templates", "static"}, *dist)
		if err != nil {
			log.Fatal().Err(err).Msg("build dist")
		}
		for _, s := range stats {
			log.Info().Str("file", s.Path).Int("before", s.Before).Int("after", s.After).
				Msgf("%.1f%% reduction", s.Reduction())
		}
		log.Info().Str("dir", *dist).Int("files", len(stats)).Msg("minification complete")
		return
	}

	if *inputFile == "" || *outputFile == "" {
		log.Fatal().Msg("usage: go run ./cmd/minify -input=<file> -output=<file> [-type=<css|js|html>] | -dist=<dir>")
	}
	mediaType, err := mediaTypeFor(*fileType, *inputFile)
	if err != nil {
		log.Fatal().Err(err).Str("type", *fileType).Msg("pick minifier")
	}
	s, err := minifyFile(m, *inputFile, *outputFile, mediaType)
	if err != nil {
		log.Fatal().Err(err).Str("input", *inputFile).Msg("minify")
	}
	log.Info().Str("input", *inputFile).Str("output", *outputFile).
		Msgf("%d bytes -> %d bytes", s.Before, s.After)
}

// newMinifier registers the CSS, JS and HTML minifiers. HTML keeps Go template
// actions intact so minified templates still parse.
func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc(mediaJS, js.Minify)
	m.Add(mediaHTML, &html.Minifier{
		TemplateDelims:   html.GoTemplateDelims,
		KeepDocumentTags: true,
		KeepEndTags:      true,
		KeepQuotes:       true,
	})
	return m
}

// mediaTypeFor resolves an explicit -type value, falling back to the file extension.
func mediaTypeFor(fileType, path string) (string, error) {
	t := strings.ToLower(strings.TrimSpace(fileType))
	if t == "" {
		t = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	switch t {
	case "css":
		return mediaCSS, nil
	case "js":
		return mediaJS, nil
	case "html", "htm":
		return mediaHTML, nil
	}
	return "", errUnsupported
}

type fileStat struct {
	Path   string
	Before int
	After  int
}

func (s fileStat) Reduction() float64 {
	if s.Before == 0 {
		return 0
	}
	return float64(s.Before-s.After) / float64(s.Before) * 100
}

// buildDist mirrors each root under outDir, minifying the files it knows and
// copying the rest unchanged.
func buildDist(m *minify.M, roots []string, outDir string) ([]fileStat, error) {
	var stats []fileStat
	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return err
			}
			dst := filepath.Join(outDir, path)
			mediaType, err := mediaTypeFor("", path)
			if errors.Is(err, errUnsupported) {
				return copyFile(path, dst)
			}
			s, err := minifyFile(m, path, dst, mediaType)
			if err != nil {
				return err
			}
			stats = append(stats, s)
			return nil
		})
		if err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func minifyFile(m *minify.M, srcPath, dstPath, mediaType string) (fileStat, error) {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fileStat{}, err
	}
	minified, err := m.Bytes(mediaType, src)
	if err != nil {
		return fileStat{}, err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return fileStat{}, err
	}
	if err := os.WriteFile(dstPath, minified, 0644); err != nil {
		return fileStat{}, err
	}
	return fileStat{Path: srcPath, Before: len(src), After: len(minified)}, nil
}

func copyFile(srcPath, dstPath string) error {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dstPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(dstPath, data, 0644)
}
