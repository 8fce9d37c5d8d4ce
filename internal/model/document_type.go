// Package model defines the core domain models used throughout the application.
package model

// Encoding identifies the text encoding detected from a byte-order mark.
type Encoding string

// Supported statement encodings.
const (
	EncodingUTF8    Encoding = "UTF-8"
	EncodingUTF16LE Encoding = "UTF-16LE"
	EncodingUTF16BE Encoding = "UTF-16BE"
)

// OFXVersion distinguishes the two OFX wire dialects.
type OFXVersion string

// OFX dialects.
const (
	OFXVersionSGML OFXVersion = "SGML"
	OFXVersionXML  OFXVersion = "XML"
)

// QIFAccountType is the account type declared in a QIF !Type: header.
type QIFAccountType string

// QIF account types.
const (
	QIFAccountBank       QIFAccountType = "Bank"
	QIFAccountCash       QIFAccountType = "Cash"
	QIFAccountCreditCard QIFAccountType = "CCard"
	QIFAccountInvestment QIFAccountType = "Invst"
)

// ImageFormat identifies a scanned-statement image format.
type ImageFormat string

// Recognized image formats.
const (
	ImageFormatPNG  ImageFormat = "PNG"
	ImageFormatJPEG ImageFormat = "JPEG"
)

// DocumentType describes the detected format of a statement file.
// It is a sealed sum type: consumers must switch exhaustively over the
// concrete variants below.
type DocumentType interface {
	isDocumentType()
}

// DelimitedText is a CSV-like statement with a known delimiter and encoding.
type DelimitedText struct {
	Encoding  Encoding
	Delimiter rune
}

// OFX is an Open Financial Exchange statement.
type OFX struct {
	Version OFXVersion
}

// QIF is a Quicken Interchange Format statement.
type QIF struct {
	AccountType QIFAccountType
}

// PDF is a PDF statement, optionally tagged with a recognized bank.
type PDF struct {
	BankSignature string
}

// Image is a scanned statement image.
type Image struct {
	Format ImageFormat
}

// Unknown is returned when no format could be determined. Detection never
// fails; it degrades to this variant.
type Unknown struct{}

func (DelimitedText) isDocumentType() {}
func (OFX) isDocumentType()           {}
func (QIF) isDocumentType()           {}
func (PDF) isDocumentType()           {}
func (Image) isDocumentType()         {}
func (Unknown) isDocumentType()       {}
