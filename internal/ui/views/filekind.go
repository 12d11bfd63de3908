package views

import (
	"path/filepath"
	"strings"

	"quickbar/internal/domain"
)

// Kind is the display classification of a result
type Kind struct {
	Label string
	Icon  string
}

var (
	KindFolder      = Kind{"Folder", "▸"}
	KindShortcut    = Kind{"Shortcut", "↗"}
	KindApplication = Kind{"Application", "◆"}
	KindScript      = Kind{"Script", "$"}
	KindSystemTool  = Kind{"System Tool", "⚙"}
	KindLauncher    = Kind{"Launcher", "◇"}
	KindDocument    = Kind{"Document", "≡"}
	KindImage       = Kind{"Image", "▣"}
	KindAudio       = Kind{"Audio", "♪"}
	KindVideo       = Kind{"Video", "▶"}
	KindArchive     = Kind{"Archive", "▤"}
	KindFile        = Kind{"File", "·"}
)

var kindsByExt = map[string]Kind{
	".lnk":      KindShortcut,
	".url":      KindShortcut,
	".exe":      KindApplication,
	".app":      KindApplication,
	".appimage": KindApplication,
	".bat":      KindScript,
	".cmd":      KindScript,
	".ps1":      KindScript,
	".sh":       KindScript,
	".msc":      KindSystemTool,
	".cpl":      KindSystemTool,
	".desktop":  KindLauncher,
	".pdf":      KindDocument,
	".doc":      KindDocument,
	".docx":     KindDocument,
	".txt":      KindDocument,
	".md":       KindDocument,
	".xls":      KindDocument,
	".xlsx":     KindDocument,
	".ppt":      KindDocument,
	".pptx":     KindDocument,
	".png":      KindImage,
	".jpg":      KindImage,
	".jpeg":     KindImage,
	".gif":      KindImage,
	".svg":      KindImage,
	".webp":     KindImage,
	".mp3":      KindAudio,
	".flac":     KindAudio,
	".wav":      KindAudio,
	".ogg":      KindAudio,
	".mp4":      KindVideo,
	".mkv":      KindVideo,
	".mov":      KindVideo,
	".avi":      KindVideo,
	".zip":      KindArchive,
	".tar":      KindArchive,
	".gz":       KindArchive,
	".7z":       KindArchive,
	".rar":      KindArchive,
}

// Classify picks the kind of a result. A file type supplied by the backend
// wins over the id suffix.
func Classify(r domain.SearchResult) Kind {
	if r.FileType != "" {
		return kindForLabel(r.FileType)
	}
	if r.ActionType == domain.ActionFolder {
		return KindFolder
	}
	if k, ok := kindsByExt[strings.ToLower(filepath.Ext(r.ID))]; ok {
		return k
	}
	return KindFile
}

func kindForLabel(label string) Kind {
	for _, k := range []Kind{
		KindFolder, KindShortcut, KindApplication, KindScript, KindSystemTool,
		KindLauncher, KindDocument, KindImage, KindAudio, KindVideo, KindArchive,
	} {
		if strings.EqualFold(k.Label, label) {
			return k
		}
	}
	return Kind{Label: label, Icon: KindFile.Icon}
}
