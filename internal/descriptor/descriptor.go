// SPDX-License-Identifier: MPL-2.0

// Package descriptor extracts declared mod metadata from a parsed
// modDesc.xml tree into the report's Descriptor, raising flags for
// missing or suspicious declarations. Every field has exactly one
// default (set by modrecord.New) and one override condition documented
// on the extraction step below.
package descriptor

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"modvet/pkg/flagset"
	"modvet/pkg/modrecord"
)

// ddsExt is the required extension for mod icons.
const ddsExt = ".dds"

// keyboardDevice is the input device whose bindings are collected.
const keyboardDevice = "KB_MOUSE_DEFAULT"

// L10N carries the raw locale-keyed title/description maps for the
// localization resolver.
type L10N struct {
	Title       map[string]string
	Description map[string]string
}

// Extract populates rec.ModDesc from the descriptor tree and returns
// the locale maps. The caller guarantees doc parsed successfully and
// that the classification lists in rec.FileDetail are final (icon
// resolution checks the DDS list).
func Extract(doc *etree.Document, rec *modrecord.Report, reg *flagset.Registry) L10N {
	desc := rec.ModDesc
	root := doc.Root()

	// Schema version: defaults to 0, flagged when it stays there.
	if raw := root.SelectAttrValue("descVersion", ""); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			desc.DescVersion = v
		}
	}
	if desc.DescVersion == 0 {
		reg.Raise(flagset.DescriptorVersionOld)
	}

	// Mod version: defaults to "0.0.0.0", flagged when it stays there.
	if el := doc.FindElement("//version"); el != nil {
		if text := strings.TrimSpace(el.Text()); text != "" {
			desc.Version = text
		}
	}
	if desc.Version == modrecord.DefaultVersion {
		reg.Raise(flagset.NoModVersion)
	}

	if el := doc.FindElement("//author"); el != nil {
		if text := strings.TrimSpace(el.Text()); text != "" {
			desc.Author = text
		}
	}

	if el := doc.FindElement("//multiplayer"); el != nil {
		if v, err := strconv.ParseBool(el.SelectAttrValue("supported", "")); err == nil {
			desc.MultiPlayer = v
		}
	}

	desc.StoreItems = len(doc.FindElements("//storeItem"))

	if el := doc.FindElement("//map"); el != nil {
		if v := el.SelectAttrValue("configFilename", ""); v != "" {
			desc.MapConfigFile = &v
		}
	}

	for _, el := range doc.FindElements("//dependency") {
		if text := strings.TrimSpace(el.Text()); text != "" {
			desc.Depend = append(desc.Depend, text)
		}
	}

	// The mere presence of a store product id is the piracy signal,
	// whatever its value.
	if doc.FindElement("//productId") != nil {
		reg.Raise(flagset.MightBePiracy)
	}

	desc.IconFileName = resolveIcon(doc, rec.FileDetail.ImageDDS)
	if desc.IconFileName == nil {
		reg.Raise(flagset.NoModIcon)
	}

	extractBindings(doc, desc)

	return L10N{
		Title:       localeMap(doc.FindElement("//title")),
		Description: localeMap(doc.FindElement("//description")),
	}
}

// resolveIcon normalizes the declared icon filename and accepts it only
// when the DDS list collected during classification contains it. The
// game converts declared png icons to dds on export, so a non-dds name
// gets its last four characters (assumed ".xxx") replaced with ".dds".
func resolveIcon(doc *etree.Document, ddsList []string) *string {
	el := doc.FindElement("//iconFilename")
	if el == nil {
		return nil
	}

	name := strings.TrimSpace(el.Text())
	if name == "" {
		// Some descriptors wrap the filename in a child element list;
		// the first textual child wins.
		for _, child := range el.ChildElements() {
			if text := strings.TrimSpace(child.Text()); text != "" {
				name = text
				break
			}
		}
	}
	if name == "" {
		return nil
	}

	if !strings.HasSuffix(strings.ToLower(name), ddsExt) && len(name) > 4 {
		name = name[:len(name)-4] + ddsExt
	}

	for _, dds := range ddsList {
		if dds == name {
			return &name
		}
	}
	return nil
}

// extractBindings records declared input actions and the key bindings
// for the default keyboard/mouse device. Best effort: malformed entries
// are skipped, never fatal.
func extractBindings(doc *etree.Document, desc *modrecord.Descriptor) {
	for _, el := range doc.FindElements("//action") {
		name := el.SelectAttrValue("name", "")
		if name == "" {
			continue
		}
		category := el.SelectAttrValue("category", "")
		if category == "" {
			category = "ALL"
		}
		desc.Actions[name] = category
	}

	for _, el := range doc.FindElements("//actionBinding") {
		action := el.SelectAttrValue("action", "")
		if action == "" {
			continue
		}
		for _, binding := range el.SelectElements("binding") {
			if binding.SelectAttrValue("device", "") != keyboardDevice {
				continue
			}
			if input := binding.SelectAttrValue("input", ""); input != "" {
				desc.Binds[action] = append(desc.Binds[action], input)
			}
		}
	}
}

// localeMap flattens a <title>/<description> element into a locale →
// text map. A plain text element (no children) is treated as English.
func localeMap(el *etree.Element) map[string]string {
	out := map[string]string{}
	if el == nil {
		return out
	}

	children := el.ChildElements()
	if len(children) == 0 {
		if text := strings.TrimSpace(el.Text()); text != "" {
			out["en"] = text
		}
		return out
	}

	for _, child := range children {
		out[child.Tag] = strings.TrimSpace(child.Text())
	}
	return out
}
