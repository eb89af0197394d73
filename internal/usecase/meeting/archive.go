package meeting

import (
	"bytes"
	"context"
	"net/url"
	"path"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aseeltahaa/smartspace/internal/domain/entities"
	"github.com/aseeltahaa/smartspace/internal/infrastructure/storage"
)

// archiveConcurrency bounds parallel attachment downloads
const archiveConcurrency = 4

// ArchiveResult lists the stored object names and the attachments that failed
type ArchiveResult struct {
	Sink   string            `json:"sink"`
	Stored []string          `json:"stored"`
	Failed map[string]string `json:"failed,omitempty"`
}

// ArchiveAttachments copies every attachment of the meeting into sink under
// meetings/{id}/. A failed attachment does not stop the others.
func (s *Service) ArchiveAttachments(ctx context.Context, meetingID entities.ID, sink storage.Sink) (*ArchiveResult, error) {
	m, err := s.Scope(meetingID).Meeting(ctx)
	if err != nil {
		return nil, err
	}

	res := &ArchiveResult{Sink: sink.Name(), Stored: []string{}}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(archiveConcurrency)
	for _, attachment := range m.Attachments {
		name := AttachmentName(attachment)
		if name == "" {
			continue
		}
		g.Go(func() error {
			object := path.Join("meetings", meetingID.String(), name)
			err := s.archiveOne(gctx, meetingID, name, object, sink)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if res.Failed == nil {
					res.Failed = make(map[string]string)
				}
				res.Failed[name] = err.Error()
				if s.logger != nil {
					s.logger.Warn("⚠️ Attachment not archived",
						zap.String("meeting_id", meetingID.String()),
						zap.String("file", name),
						zap.Error(err),
					)
				}
				return nil
			}
			res.Stored = append(res.Stored, object)
			return nil
		})
	}
	_ = g.Wait()

	if s.logger != nil {
		s.logger.Info("📦 Attachments archived",
			zap.String("meeting_id", meetingID.String()),
			zap.String("sink", res.Sink),
			zap.Int("stored", len(res.Stored)),
			zap.Int("failed", len(res.Failed)),
		)
	}
	return res, nil
}

func (s *Service) archiveOne(ctx context.Context, meetingID entities.ID, name, object string, sink storage.Sink) error {
	var buf bytes.Buffer
	contentType, err := s.repo.DownloadAttachment(ctx, meetingID, name, &buf)
	if err != nil {
		return err
	}
	return sink.Put(ctx, object, &buf, int64(buf.Len()), contentType)
}

// AttachmentName returns the file name of an attachment URL or path
func AttachmentName(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Path != "" {
		ref = u.Path
	}
	name := path.Base(ref)
	if name == "." || name == "/" {
		return ""
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	return name
}
