package converter

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"unicode/utf8"
)

// containerPath is the well-known location of container.xml in an EPUB archive.
const containerPath = "META-INF/container.xml"

// containerXML models META-INF/container.xml, which locates the OPF package.
type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// opfPackage models the root <package> element of the OPF file. Only the
// manifest matters here: conversion walks the content documents it lists.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Manifest opfManifest `xml:"manifest"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// isDocumentItem reports whether a manifest item is a content document.
// Images, stylesheets and fonts are skipped.
func (i opfManifestItem) isDocumentItem() bool {
	switch strings.ToLower(strings.TrimSpace(i.MediaType)) {
	case "application/xhtml+xml", "text/html":
		return true
	}
	return false
}

// extractText opens the EPUB at originalPath and returns the plain text of
// all its content documents, joined with a blank line, in manifest order.
// A document that cannot be read or decoded is skipped with a warning; an
// archive that cannot be opened at all is a *ConversionError.
func extractText(originalPath string) (string, error) {
	zr, err := zip.OpenReader(originalPath)
	if err != nil {
		return "", conversionErr(originalPath, "cannot open EPUB archive: %w", err)
	}
	defer zr.Close()

	opfPath, pkg, err := parsePackage(&zr.Reader)
	if err != nil {
		return "", conversionErr(originalPath, "%w", err)
	}

	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		entries[f.Name] = f
	}

	opfDir := path.Dir(opfPath)
	var parts []string
	for _, item := range pkg.Manifest.Items {
		if !item.isDocumentItem() {
			continue
		}

		name := item.Href
		if opfDir != "." {
			name = path.Join(opfDir, item.Href)
		}

		text, err := readDocument(entries, name)
		if err != nil {
			log.Printf("Warning: could not process item %s: %v", name, err)
			continue
		}
		parts = append(parts, text)
	}

	return strings.Join(parts, "\n\n"), nil
}

// parsePackage locates the OPF via container.xml and decodes its manifest.
func parsePackage(zr *zip.Reader) (string, *opfPackage, error) {
	containerData, err := readEntry(zr, containerPath)
	if err != nil {
		return "", nil, fmt.Errorf("not a valid EPUB container: %w", err)
	}

	var c containerXML
	if err := xml.Unmarshal(containerData, &c); err != nil {
		return "", nil, fmt.Errorf("cannot parse container.xml: %w", err)
	}
	if len(c.RootFiles) == 0 || strings.TrimSpace(c.RootFiles[0].FullPath) == "" {
		return "", nil, fmt.Errorf("container.xml names no rootfile")
	}
	opfPath := strings.TrimSpace(c.RootFiles[0].FullPath)

	opfData, err := readEntry(zr, opfPath)
	if err != nil {
		return "", nil, fmt.Errorf("cannot read OPF package %s: %w", opfPath, err)
	}

	var pkg opfPackage
	if err := xml.Unmarshal(opfData, &pkg); err != nil {
		return "", nil, fmt.Errorf("cannot parse OPF package %s: %w", opfPath, err)
	}

	return opfPath, &pkg, nil
}

// readDocument reads one content document and strips its markup. The bytes
// must be valid UTF-8; anything else counts as a decode failure for that
// document only.
func readDocument(entries map[string]*zip.File, name string) (string, error) {
	f, ok := entries[name]
	if !ok {
		return "", fmt.Errorf("document missing from archive")
	}

	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("document is not valid UTF-8")
	}

	return StripMarkup(string(data)), nil
}

func readEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}
