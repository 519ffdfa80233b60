package services

import (
	"testing"

	"github.com/Stevekk11/PersonalCloud/config"
)

func TestIsFileExtensionForbidden(t *testing.T) {
	config.AppConfig = &config.Config{
		Storage: config.StorageConfig{
			DisallowedExtensions: []string{".cs", ".exe", ".cshtml", "js"},
		},
	}

	cases := []struct {
		name      string
		forbidden bool
	}{
		{"shell.js", true},
		{"Program.CS", true},
		{"setup.exe", true},
		{"index.cshtml", true},
		{"report.pdf", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"js", false},
	}
	for _, tc := range cases {
		if got := isFileExtensionForbidden(tc.name); got != tc.forbidden {
			t.Fatalf("isFileExtensionForbidden(%q) = %v, want %v", tc.name, got, tc.forbidden)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{"a/b/c.txt", "c.txt"},
		{"..\\..\\boot.ini", "boot.ini"},
		{"..", ""},
		{".", ""},
		{"/", ""},
	}
	for _, tc := range cases {
		if got := sanitizeFileName(tc.in); got != tc.want {
			t.Fatalf("sanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeFolderPath(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"", "", true},
		{"/", "", true},
		{"music", "music", true},
		{"/music/rock/", "music/rock", true},
		{"\\music\\rock", "music/rock", true},
		{"../private", "", false},
		{"music/../../etc", "", false},
		{"~/music", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeFolderPath(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Fatalf("normalizeFolderPath(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{int64(10.5 * 1024 * 1024 * 1024), "10.5 GB"},
	}
	for _, tc := range cases {
		if got := formatFileSize(tc.size); got != tc.want {
			t.Fatalf("formatFileSize(%d) = %q, want %q", tc.size, got, tc.want)
		}
	}
}
