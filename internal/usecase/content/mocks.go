package content

import (
	"context"
	"io"

	"github.com/fellrun/content-pipeline/internal/model"
	"github.com/fellrun/content-pipeline/internal/port"
)

type mockStorage struct {
	statInfo port.ObjectInfo

	statErr error
	saveErr error

	statCalled bool
	saveCalled bool

	savedKey         string
	savedData        []byte
	savedSize        int64
	savedContentType string
	savedMeta        map[string]string
}

func (m *mockStorage) StatObject(ctx context.Context, objectKey string) (port.ObjectInfo, error) {
	m.statCalled = true
	if m.statErr != nil {
		return port.ObjectInfo{}, m.statErr
	}
	return m.statInfo, nil
}
func (m *mockStorage) SaveObject(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string, userMetadata map[string]string) error {
	m.saveCalled = true
	m.savedKey = objectKey
	m.savedSize = size
	m.savedContentType = contentType
	m.savedMeta = userMetadata
	if reader != nil {
		m.savedData, _ = io.ReadAll(reader)
	}
	return m.saveErr
}
func (m *mockStorage) PublicURL(objectKey string) string {
	return "https://cdn.example.com/" + objectKey
}

type mockTranscoder struct {
	out port.TranscodedImage
	err error

	// when set, only this filename transcodes successfully
	okName string

	called    bool
	filenames []string
}

func (m *mockTranscoder) Transcode(data []byte, filename string) (*port.TranscodedImage, error) {
	m.called = true
	m.filenames = append(m.filenames, filename)
	if m.okName != "" && filename != m.okName {
		return nil, m.err
	}
	if m.okName == "" && m.err != nil {
		return nil, m.err
	}
	out := m.out
	return &out, nil
}

type mockConverter struct {
	outs map[string]port.ConvertImageOutput
	errs map[string]error

	calls []string
}

func (m *mockConverter) ConvertImage(ctx context.Context, in port.ConvertImageInput) (port.ConvertImageOutput, error) {
	m.calls = append(m.calls, in.Filename)
	if err := m.errs[in.Filename]; err != nil {
		return port.ConvertImageOutput{}, err
	}
	if out, ok := m.outs[in.Filename]; ok {
		return out, nil
	}
	return port.ConvertImageOutput{
		Asset: model.MediaAsset{Filename: in.Filename, RemoteKey: RemoteImageKey(in.Slug, in.Filename)},
	}, nil
}

type mockUploader struct {
	outs map[string]port.UploadVideoOutput
	errs map[string]error

	calls []string
}

func (m *mockUploader) UploadVideo(ctx context.Context, in port.UploadVideoInput) (port.UploadVideoOutput, error) {
	m.calls = append(m.calls, in.Filename)
	if err := m.errs[in.Filename]; err != nil {
		return port.UploadVideoOutput{}, err
	}
	if out, ok := m.outs[in.Filename]; ok {
		return out, nil
	}
	key := RemoteVideoKey(in.Slug, in.Filename)
	return port.UploadVideoOutput{
		Video: model.MediaVideo{Filename: in.Filename, RemoteKey: key, PublicURL: "https://cdn.example.com/" + key},
	}, nil
}

type mockDirScanner struct {
	files []string
	err   error
}

func (m *mockDirScanner) ListImages(dir string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.files, nil
}

type mockDocScanner struct {
	videoSources []string
	inlineImages []string
	rewriteErr   error

	rewrittenVideos map[string]string
}

func (m *mockDocScanner) InlineVideoSources(body string) []string {
	return m.videoSources
}
func (m *mockDocScanner) RewriteInlineImages(body, entryDir string, resolve port.ImageResolver) (string, error) {
	if m.rewriteErr != nil {
		return "", m.rewriteErr
	}
	for _, f := range m.inlineImages {
		if _, err := resolve(entryDir, f); err != nil {
			continue
		}
	}
	return "rewritten:" + body, nil
}
func (m *mockDocScanner) RewriteVideoSources(body string, resolved map[string]string) string {
	m.rewrittenVideos = resolved
	return body
}
