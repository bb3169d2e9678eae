package preview

// binaryContentType is the generic type for unknown extensions.
const binaryContentType = "application/octet-stream"

// contentTypes is the static extension to MIME table. Rendering decisions
// are made from the extension alone, never by sniffing bytes.
var contentTypes = map[string]string{
	// images
	".jpg": "image/jpeg", ".jpeg": "image/jpeg", ".png": "image/png",
	".gif": "image/gif", ".bmp": "image/bmp", ".webp": "image/webp",
	".svg": "image/svg+xml", ".ico": "image/x-icon",

	// documents
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".txt":  "text/plain", ".md": "text/markdown", ".rtf": "application/rtf",

	// code
	".js": "application/javascript", ".json": "application/json",
	".xml": "text/xml", ".html": "text/html", ".htm": "text/html",
	".css": "text/css", ".scss": "text/x-scss", ".less": "text/x-less",
	".py": "text/x-python", ".java": "text/x-java", ".cpp": "text/x-c++",
	".c": "text/x-c", ".h": "text/x-c", ".php": "text/x-php",
	".rb": "text/x-ruby", ".go": "text/x-go", ".rs": "text/x-rust",
	".sql": "text/x-sql", ".sh": "text/x-shellscript",

	// data
	".csv": "text/csv", ".tsv": "text/tab-separated-values",
	".jsonl": "application/jsonl",

	// audio
	".mp3": "audio/mpeg", ".wav": "audio/wav", ".ogg": "audio/ogg",
	".m4a": "audio/mp4", ".flac": "audio/flac",

	// video
	".mp4": "video/mp4", ".avi": "video/x-msvideo", ".mov": "video/quicktime",
	".wmv": "video/x-ms-wmv", ".flv": "video/x-flv", ".webm": "video/webm",

	// archives
	".zip": "application/zip", ".rar": "application/x-rar-compressed",
	".7z": "application/x-7z-compressed", ".tar": "application/x-tar",
	".gz": "application/gzip",

	// databases
	".db": "application/x-sqlite3", ".sqlite": "application/x-sqlite3",
	".sqlite3": "application/x-sqlite3",
}

// ContentTypeFor maps a lowercased file extension (with leading dot) to
// its MIME type, falling back to a generic binary type.
func ContentTypeFor(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	return binaryContentType
}
