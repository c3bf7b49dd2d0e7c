// SPDX-License-Identifier: MPL-2.0

// Package inspect drives the full mod inspection pipeline: name
// validation, archive opening, save-game and zip-pack detection, file
// classification, descriptor and map extraction, icon decoding, and
// localization, folded into a single ModReport.
//
// The pipeline never fails: every fatal condition short-circuits the
// remaining stages but still produces a report, and localization and
// badge assembly run on every exit path.
package inspect

import (
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"modvet/internal/archive"
	"modvet/internal/descriptor"
	"modvet/internal/icon"
	"modvet/internal/l10n"
	"modvet/internal/mapdata"
	"modvet/internal/scan"
	"modvet/internal/trace"
	"modvet/pkg/flagset"
	"modvet/pkg/modrecord"
	"modvet/pkg/savegame"
)

// descriptorFile is the file that makes an archive a mod.
const descriptorFile = "modDesc.xml"

// saveGameMarker identifies a save game masquerading as a mod.
const saveGameMarker = "careerSavegame.xml"

// Options tune one inspection run.
type Options struct {
	// Locale selects the language for title/description resolution.
	Locale string
	// IncludeSaveGame embeds a farm summary when the artifact turns out
	// to be a save game.
	IncludeSaveGame bool
	// Checksum computes an MD5 of the archive bytes. Ignored for
	// folders and discarded when the artifact has no descriptor.
	Checksum bool
}

// DefaultOptions are the options used by File.
func DefaultOptions() Options {
	return Options{Locale: "en"}
}

// File inspects the artifact at path with default options.
func File(path string) *modrecord.Report {
	return FileWithOptions(path, DefaultOptions())
}

// FileWithOptions inspects the artifact at path. The returned report is
// complete on every path; inspection itself never returns an error.
func FileWithOptions(path string, opts Options) *modrecord.Report {
	if opts.Locale == "" {
		opts.Locale = "en"
	}

	info, statErr := os.Stat(path)
	isFolder := statErr == nil && info.IsDir()

	p := &run{
		opts: opts,
		rec:  modrecord.New(path, isFolder),
		reg:  flagset.NewRegistry(),
		logc: trace.New(),
	}
	p.execute(path, info)
	return p.rec
}

// run carries one artifact's pipeline state.
type run struct {
	opts Options
	rec  *modrecord.Report
	reg  *flagset.Registry
	logc *trace.Collector
	maps descriptor.L10N
}

// execute walks the stage sequence. Each stage either mutates state and
// falls through or returns early; finish runs on every path.
func (p *run) execute(path string, info os.FileInfo) {
	defer p.finish()

	nameOK := scan.ValidateName(p.rec.FileDetail, p.reg)
	if !nameOK {
		p.reg.Raise(flagset.NameInvalid)
		p.logc.Notice("file name unusable", "name", p.rec.FileDetail.ShortName)
	}

	if p.rec.FileDetail.IsFolder {
		// Unzipped mods load, but the game refuses them in multiplayer.
		p.reg.Raise(flagset.NoMultiplayerUnzipped)
	}

	h, err := archive.Open(path, p.rec.FileDetail.IsFolder)
	if err != nil {
		if nameOK {
			p.reg.Raise(flagset.UnreadableArchive)
		}
		p.logc.Warning("artifact could not be opened", "err", err)
		return
	}
	defer h.Close()

	entries := h.List()
	p.collectMetadata(info, entries)

	if h.Exists(saveGameMarker) {
		p.detectSaveGame(h)
		return
	}

	if !nameOK {
		return
	}

	if !h.IsFolder() {
		if zips := scan.DetectZipPack(entries); zips != nil {
			p.rec.FileDetail.ZipFiles = zips
			p.rec.FileDetail.IsModPack = true
			p.reg.Raise(flagset.LikelyZipPack)
			p.logc.Notice("archive is a pack of zip files", "count", len(zips))
			return
		}
	}

	doc, err := h.ReadXML(descriptorFile)
	if err != nil {
		if errors.Is(err, archive.ErrParse) {
			p.reg.Raise(flagset.DescriptorParseError)
			p.logc.Warning("mod descriptor is not well-formed", "err", err)
		} else {
			p.reg.Raise(flagset.DescriptorMissing)
			p.logc.Notice("mod descriptor not present")
		}
		return
	}

	scan.Classify(h, entries, p.rec, p.reg, p.logc)
	p.maps = descriptor.Extract(doc, p.rec, p.reg)
	p.decodeIcon(h)
	mapdata.Extract(h, p.rec, p.logc)
	p.checksum(path)
}

// collectMetadata records modification date and artifact size. A folder
// is sized as the sum of its entries; an archive by its file size.
func (p *run) collectMetadata(info os.FileInfo, entries []archive.Entry) {
	if info == nil {
		return
	}
	p.rec.FileDetail.FileDate = info.ModTime().UTC().Format(time.RFC3339)
	if p.rec.FileDetail.IsFolder {
		var total int64
		for _, e := range entries {
			total += e.Size
		}
		p.rec.FileDetail.FileSize = total
	} else {
		p.rec.FileDetail.FileSize = info.Size()
	}
}

// detectSaveGame marks the artifact as a save game. Saves have no mod
// version; the placeholder makes that explicit in the report.
func (p *run) detectSaveGame(h archive.Handle) {
	p.rec.FileDetail.IsSaveGame = true
	p.rec.ModDesc.Version = "--"
	p.reg.Raise(flagset.IsSaveGame)
	p.logc.Info("artifact is a save game")

	if !p.opts.IncludeSaveGame {
		return
	}
	record := savegame.ParseHandle(h)
	raw, err := json.Marshal(record)
	if err != nil {
		p.logc.Warning("save-game record not serializable", "err", err)
		return
	}
	msg := json.RawMessage(raw)
	p.rec.SaveGame = &msg
}

// decodeIcon turns the resolved icon file into an embeddable thumbnail.
// Failure degrades to the no-icon flag, never an error.
func (p *run) decodeIcon(h archive.Handle) {
	name := p.rec.ModDesc.IconFileName
	if name == nil {
		return
	}
	raw, err := h.ReadBin(*name)
	if err != nil {
		p.logc.Warning("icon file not readable", "file", *name, "err", err)
		p.reg.Raise(flagset.NoModIcon)
		return
	}
	uri, err := icon.Decode(raw, true)
	if err != nil {
		p.logc.Warning("icon file not decodable", "file", *name, "err", err)
		p.reg.Raise(flagset.NoModIcon)
		return
	}
	p.rec.ModDesc.IconImage = &uri
}

// checksum hashes the archive bytes. Runs only once the descriptor
// stage succeeded, so descriptor-less artifacts never carry one, and
// folders are skipped entirely.
func (p *run) checksum(path string) {
	if !p.opts.Checksum || p.rec.FileDetail.IsFolder {
		return
	}
	f, err := os.Open(path)
	if err != nil {
		p.logc.Warning("checksum source not readable", "err", err)
		return
	}
	defer f.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, f); err != nil {
		p.logc.Warning("checksum read failed", "err", err)
		return
	}
	sum := fmt.Sprintf("%x", hash.Sum(nil))
	p.rec.MD5Sum = &sum
}

// finish runs the unconditional tail of the pipeline: localization,
// the trace, and badge assembly.
func (p *run) finish() {
	l10n.Resolve(p.maps, p.opts.Locale, p.rec, p.reg)
	p.rec.LogLines = p.logc.Lines()
	p.rec.Assemble(p.reg)
}
