package domain

import (
	"errors"
	"io"
)

// DefaultFieldName is the multipart form field the image is expected under.
const DefaultFieldName = "imageFile"

var (
	ErrFileTypeRejected = errors.New("You can upload only image files!")
	ErrUnexpectedField  = errors.New("Unexpected field")
	ErrNoFile           = errors.New("no file uploaded")
	ErrNotFound         = errors.New("file not found")
)

// UploadedFile describes a file persisted by an upload request.
type UploadedFile struct {
	FieldName    string `json:"fieldname"`
	OriginalName string `json:"originalname"`
	Encoding     string `json:"encoding"`
	MimeType     string `json:"mimetype"`
	Destination  string `json:"destination"`
	FileName     string `json:"filename"`
	Path         string `json:"path"`
	Size         int64  `json:"size"`
}

// FileHeader is what the transport knows about an incoming file part
// before its body has been read.
type FileHeader struct {
	FieldName    string
	OriginalName string
	Encoding     string
	MimeType     string
}

type File struct {
	Header FileHeader
	Body   io.Reader
}
