package audio

// fileSignature maps a leading byte pattern to a file extension. Order
// matters: longer or more specific prefixes come first.
type fileSignature struct {
	prefix      []byte
	extension   string
	description string
}

var fileSignatures = []fileSignature{
	{[]byte{0x89, 'P', 'N', 'G'}, ".png", "PNG Image"},
	{[]byte{0xFF, 0xD8, 0xFF}, ".jpg", "JPEG Image"},
	{[]byte("GIF87a"), ".gif", "GIF Image"},
	{[]byte("GIF89a"), ".gif", "GIF Image"},
	{[]byte("%PDF"), ".pdf", "PDF Document"},
	{[]byte{'P', 'K', 0x03, 0x04}, ".zip", "ZIP Archive"},
	{[]byte{'P', 'K', 0x05, 0x06}, ".zip", "ZIP Archive (empty)"},
	{[]byte{'R', 'a', 'r', '!', 0x1A, 0x07}, ".rar", "RAR Archive"},
	{[]byte("RIFF"), ".wav", "WAV Audio"},
	{[]byte("ID3"), ".mp3", "MP3 Audio"},
	{[]byte{0xFF, 0xFB}, ".mp3", "MP3 Audio"},
	{[]byte{0x1F, 0x8B}, ".gz", "GZIP Archive"},
	{[]byte("BM"), ".bmp", "BMP Image"},
	{[]byte{0x00, 0x00, 0x01, 0x00}, ".ico", "ICO Icon"},
	{[]byte("MZ"), ".exe", "Windows Executable"},
	{[]byte{0x7F, 'E', 'L', 'F'}, ".elf", "Linux Executable"},
}

// DetectFileType guesses a recovered payload's type from its magic bytes.
// Payloads that look like printable text fall back to .txt; everything else
// is reported as generic binary.
func DetectFileType(data []byte) (extension, description string) {
	if len(data) < 2 {
		return ".bin", "Binary Data"
	}
	for _, sig := range fileSignatures {
		if len(data) >= len(sig.prefix) && matchPrefix(data, sig.prefix) {
			return sig.extension, sig.description
		}
	}
	if looksLikeText(data) {
		return ".txt", "Text File"
	}
	return ".bin", "Binary Data"
}

func matchPrefix(data, prefix []byte) bool {
	for i, b := range prefix {
		if data[i] != b {
			return false
		}
	}
	return true
}

func looksLikeText(data []byte) bool {
	sample := data
	if len(sample) > 100 {
		sample = sample[:100]
	}
	for _, b := range sample {
		if (b < 32 || b >= 127) && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}
