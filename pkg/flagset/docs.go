// SPDX-License-Identifier: MPL-2.0

package flagset

// docs maps each flag to a short markdown explanation shown by
// `modvet explain`. Kept next to the flag tables so a new flag cannot
// be added without a doc entry being an obvious omission.
var docs = map[Flag]string{
	GarbageFile:          "The file is neither a zip archive nor a folder. The game cannot load it as a mod.",
	LikelyCopy:           "The file name looks like a duplicated download (e.g. `MyMod (1).zip` or `MyMod - Copy.zip`). Rename it back to the original mod name.",
	LikelyZipPack:        "This looks like a pack of zipped mods rather than a single mod. Unpack it and install the contained zip files individually.",
	NameInvalid:          "The file name is not acceptable to the game. Mod names may only contain letters, digits, and underscores, and must start with a letter or underscore.",
	NameStartsDigit:      "The file name starts with a digit. The game refuses to load mods whose name does not start with a letter or underscore.",
	UnreadableArchive:    "The archive could not be opened. It is likely truncated or corrupt.",
	UnsupportedArchive:   "The archive format (e.g. rar or 7z) is not supported by the game. Repack the mod as a zip file.",
	DescriptorMissing:    "No `modDesc.xml` was found at the archive root. This is not a mod.",
	DescriptorParseError: "`modDesc.xml` exists but is not well-formed XML.",
	DescriptorVersionOld: "`modDesc.xml` declares no usable `descVersion`, so it targets an unsupported game version.",

	MightBePiracy: "The mod contains signals associated with pirated content (a store `productId` declaration or `.dat`/`.l64` payload files).",
	NoModIcon:     "The icon declared in `modDesc.xml` does not resolve to a DDS file inside the mod.",
	NoModVersion:  "`modDesc.xml` declares no `<version>` element.",
	SpaceInFile:   "One or more contained file names include a space character, which slows down game loading.",
	L10NNotSet:    "The mod declares no usable localized title or description.",
	DDSTooBig:     "A DDS texture exceeds 12 MiB.",
	GDMTooBig:     "A GDM file exceeds 18 MiB.",
	I3DTooBig:     "An I3D cache file exceeds 10 MiB.",
	ShapesTooBig:  "A shapes file exceeds 256 MiB.",
	XMLTooBig:     "An XML file exceeds 256 KiB.",
	HasExtra:      "The mod contains files of types the game never reads; they only inflate the download.",
	GRLETooMany:   "More than 10 GRLE files were found.",
	PDFTooMany:    "More than one PDF file was found.",
	PNGTooMany:    "More than 128 PNG files were found.",
	TXTTooMany:    "More than 2 TXT files were found.",

	IsSaveGame:            "This artifact is a save game, not a mod.",
	NoMultiplayerUnzipped: "Unzipped (folder) mods cannot be used in multiplayer games.",
	MaliciousCode:         "A contained lua script calls file or folder deletion functions. Review the script before using the mod.",
}

// Describe returns the markdown explanation for a flag, or an empty
// string for unknown names.
func Describe(f Flag) string {
	return docs[f]
}
