package service

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ds124wfegd/insight-analyzer/internal/entity"
	"github.com/ds124wfegd/insight-analyzer/internal/pkg/processor"
	"github.com/sirupsen/logrus"
)

const (
	SourceDefault = "default"
	SourceUpload  = "upload"
)

func (s *galleryService) DefaultGallery(ctx context.Context) (*entity.GalleryResponse, error) {
	src, err := s.defaultSource()
	if err != nil {
		return nil, err
	}
	return s.gallery(ctx, src, SourceDefault)
}

func (s *galleryService) UploadGallery(ctx context.Context, r io.Reader) (*entity.GalleryResponse, error) {
	src, err := s.processor.Decode(r)
	if err != nil {
		return nil, err
	}
	return s.gallery(ctx, src, SourceUpload)
}

func (s *galleryService) DefaultVariant(ctx context.Context, name string) ([]byte, error) {
	src, err := s.defaultSource()
	if err != nil {
		return nil, err
	}
	return s.variantPNG(ctx, src, name, SourceDefault)
}

func (s *galleryService) UploadVariant(ctx context.Context, r io.Reader, name string) ([]byte, error) {
	if !knownVariant(name) {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownVariant, name)
	}
	src, err := s.processor.Decode(r)
	if err != nil {
		return nil, err
	}
	return s.variantPNG(ctx, src, name, SourceUpload)
}

// defaultSource decodes the bundled asset again for every interaction.
func (s *galleryService) defaultSource() (*entity.Source, error) {
	data, err := s.assets.DefaultImage()
	if err != nil {
		return nil, err
	}
	src, err := s.processor.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrDefaultImageUnavailable, err)
	}
	return src, nil
}

func (s *galleryService) gallery(ctx context.Context, src *entity.Source, origin string) (*entity.GalleryResponse, error) {
	meta := s.processor.Metadata(src)

	original, err := s.variant(src, entity.VariantOriginal)
	if err != nil {
		return nil, err
	}

	variants := make([]entity.ImageVariant, 0, len(entity.VariantNames))
	for _, name := range entity.VariantNames {
		v, err := s.variant(src, name)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}

	logrus.WithFields(logrus.Fields{
		"source": origin,
		"format": meta.Format,
		"width":  meta.Width,
		"height": meta.Height,
	}).Debug("Gallery rendered")

	s.publisher.publish(ctx, entity.InsightEvent{
		Kind: entity.EventGalleryRendered,
		Params: map[string]string{
			"source": origin,
			"format": meta.Format,
			"mode":   meta.Mode,
		},
		Width:  meta.Width,
		Height: meta.Height,
	})

	return &entity.GalleryResponse{
		Source:   origin,
		Metadata: meta,
		Original: original,
		Variants: variants,
	}, nil
}

func (s *galleryService) variant(src *entity.Source, name string) (entity.ImageVariant, error) {
	img, mode, err := s.processor.Variant(src, name)
	if err != nil {
		return entity.ImageVariant{}, err
	}
	data, err := s.processor.EncodePNG(img)
	if err != nil {
		return entity.ImageVariant{}, fmt.Errorf("encode %s: %w", name, err)
	}
	b := img.Bounds()
	return entity.ImageVariant{
		Name:    name,
		Caption: entity.VariantCaptions[name],
		Width:   b.Dx(),
		Height:  b.Dy(),
		Mode:    mode,
		DataURL: processor.DataURL(data),
	}, nil
}

func (s *galleryService) variantPNG(ctx context.Context, src *entity.Source, name, origin string) ([]byte, error) {
	img, mode, err := s.processor.Variant(src, name)
	if err != nil {
		return nil, err
	}
	data, err := s.processor.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}

	b := img.Bounds()
	s.publisher.publish(ctx, entity.InsightEvent{
		Kind: entity.EventVariantRendered,
		Params: map[string]string{
			"source":  origin,
			"variant": name,
			"mode":    mode,
		},
		Width:  b.Dx(),
		Height: b.Dy(),
	})
	return data, nil
}

func knownVariant(name string) bool {
	if name == entity.VariantOriginal {
		return true
	}
	for _, v := range entity.VariantNames {
		if v == name {
			return true
		}
	}
	return false
}
