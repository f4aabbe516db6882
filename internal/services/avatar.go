package services

import (
  "bytes"
  "context"
  "fmt"
  "image"
  "image/color"
  "image/png"
  "math/rand"
  "os"
  "path/filepath"
  "strings"

  "github.com/fogleman/gg"
  "github.com/golang/freetype/truetype"
  "golang.org/x/image/draw"
  "golang.org/x/image/font"

  "github.com/eduxhq/edux-backend/internal/logger"
  "github.com/eduxhq/edux-backend/internal/types"
)

const avatarCanvasSize = 512
const avatarOutputSize = 128

var avatarPalette = []color.NRGBA{
  {R: 0x2F, G: 0x6F, B: 0xED, A: 0xFF},
  {R: 0x12, G: 0xB8, B: 0x86, A: 0xFF},
  {R: 0xE8, G: 0x6A, B: 0x33, A: 0xFF},
  {R: 0x8A, G: 0x4F, B: 0xE8, A: 0xFF},
  {R: 0xD6, G: 0x3A, B: 0x6A, A: 0xFF},
  {R: 0x0F, G: 0x87, B: 0xA8, A: 0xFF},
}

// AvatarService draws an initials placeholder image for users without an
// uploaded photo and stores it under the local media root.
type AvatarService interface {
  CreateUserAvatar(ctx context.Context, user *types.User) error
}

type avatarService struct {
  log       *logger.Logger
  mediaRoot string
  fontFace  font.Face
}

func NewAvatarService(log *logger.Logger) (AvatarService, error) {
  serviceLog := log.With("service", "AvatarService")

  mediaRoot := strings.TrimSpace(os.Getenv("MEDIA_ROOT"))
  if mediaRoot == "" {
    return nil, fmt.Errorf("env var MEDIA_ROOT is empty")
  }
  fontPath := strings.TrimSpace(os.Getenv("AVATAR_FONT"))
  if fontPath == "" {
    return nil, fmt.Errorf("env var AVATAR_FONT is empty")
  }
  face, err := loadFontFace(fontPath, 206)
  if err != nil {
    return nil, fmt.Errorf("could not load avatar font: %w", err)
  }

  return &avatarService{
    log:       serviceLog,
    mediaRoot: mediaRoot,
    fontFace:  face,
  }, nil
}

func (as *avatarService) CreateUserAvatar(ctx context.Context, user *types.User) error {
  if user == nil {
    return fmt.Errorf("user required")
  }
  buf, err := as.drawInitialsAvatar(initialsFor(user.Name, user.Email))
  if err != nil {
    return err
  }
  relPath := filepath.Join("user_avatar", user.ID.String()+".png")
  fullPath := filepath.Join(as.mediaRoot, relPath)
  if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
    return fmt.Errorf("create avatar dir: %w", err)
  }
  if err := os.WriteFile(fullPath, buf.Bytes(), 0o644); err != nil {
    return fmt.Errorf("write avatar file: %w", err)
  }
  user.AvatarPath = "/" + filepath.ToSlash(relPath)
  return nil
}

func (as *avatarService) drawInitialsAvatar(initials string) (*bytes.Buffer, error) {
  bg := avatarPalette[rand.Intn(len(avatarPalette))]

  dc := gg.NewContext(avatarCanvasSize, avatarCanvasSize)
  dc.SetColor(bg)
  dc.DrawCircle(avatarCanvasSize/2, avatarCanvasSize/2, avatarCanvasSize/2)
  dc.Fill()
  dc.SetFontFace(as.fontFace)
  dc.SetRGB(1, 1, 1)
  dc.DrawStringAnchored(initials, avatarCanvasSize/2, avatarCanvasSize/2, 0.5, 0.5)

  // Render large, then downscale for a smooth edge.
  small := image.NewRGBA(image.Rect(0, 0, avatarOutputSize, avatarOutputSize))
  draw.CatmullRom.Scale(small, small.Bounds(), dc.Image(), dc.Image().Bounds(), draw.Over, nil)

  var buf bytes.Buffer
  if err := png.Encode(&buf, small); err != nil {
    return nil, fmt.Errorf("encode avatar png: %w", err)
  }
  return &buf, nil
}

func initialsFor(name, email string) string {
  name = strings.TrimSpace(name)
  if name == "" {
    if email != "" {
      return strings.ToUpper(email[:1])
    }
    return "?"
  }
  parts := strings.Fields(name)
  if len(parts) == 1 {
    runes := []rune(parts[0])
    return strings.ToUpper(string(runes[0]))
  }
  first := []rune(parts[0])
  last := []rune(parts[len(parts)-1])
  return strings.ToUpper(string(first[0]) + string(last[0]))
}

func loadFontFace(path string, points float64) (font.Face, error) {
  raw, err := os.ReadFile(path)
  if err != nil {
    return nil, err
  }
  f, err := truetype.Parse(raw)
  if err != nil {
    return nil, err
  }
  return truetype.NewFace(f, &truetype.Options{Size: points}), nil
}
