package http

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/jenusanjay/imageservice/internal/entity"
	"github.com/jenusanjay/imageservice/internal/images"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Gateway struct {
	images  *images.Images
	echo    *echo.Echo
	address string
}

type GatewayConfig struct {
	Images  *images.Images
	Address string
}

func New(c GatewayConfig) *Gateway {
	e := echo.New()
	e.HideBanner = true

	g := &Gateway{
		images:  c.Images,
		echo:    e,
		address: c.Address,
	}

	e.Use(
		middleware.Recover(),
		middleware.Logger(),
	)

	e.GET("/", g.hdlrHome)
	e.POST("/upload", g.hdlrUpload)
	e.GET("/list", g.hdlrList)
	e.GET("/view", g.hdlrView)
	e.POST("/delete", g.hdlrDelete)

	return g
}

func (g *Gateway) Run() error {
	return g.echo.Start(g.address)
}

func (g *Gateway) Shutdown() error {
	return g.echo.Shutdown(context.TODO())
}

type uploadResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
	Format    string `json:"format"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type thumbnailEntry struct {
	Timestamp int64  `json:"timestamp"`
	Thumbnail []byte `json:"thumbnail"`
}

type listResponse struct {
	Thumbnails []thumbnailEntry `json:"thumbnails"`
}

type viewResponse struct {
	Timestamp int64  `json:"timestamp"`
	Image     []byte `json:"image"`
}

type deleteResponse struct {
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

func (g *Gateway) hdlrHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Hello from Image service API",
	})
}

func (g *Gateway) hdlrUpload(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return err
	}

	defer c.Request().Body.Close()
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}

	// Clients send the image base64-encoded; bodies that are not
	// valid base64 are taken as raw bytes and left to the decoder.
	raw, err := base64.StdEncoding.DecodeString(string(body))
	if err != nil {
		raw = body
	}

	meta, err := g.images.Upload(c.Request().Context(), userID, raw)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, uploadResponse{
		Message:   "successfully uploaded",
		Timestamp: meta.Timestamp,
		Format:    meta.Format,
		Width:     meta.Size.Width,
		Height:    meta.Size.Height,
	})
}

func (g *Gateway) hdlrList(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return err
	}

	thumbnails, err := g.images.Thumbnails(c.Request().Context(), userID)
	if err != nil {
		return toHTTPError(err)
	}

	// A user with zero images is an empty list, not an error.
	var res = listResponse{Thumbnails: make([]thumbnailEntry, 0, len(thumbnails))}
	for _, t := range thumbnails {
		res.Thumbnails = append(res.Thumbnails, thumbnailEntry{
			Timestamp: t.Timestamp,
			Thumbnail: t.Data,
		})
	}

	return c.JSON(http.StatusOK, res)
}

func (g *Gateway) hdlrView(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return err
	}

	timestamp, err := paramTimestamp(c)
	if err != nil {
		return err
	}

	img, err := g.images.Fetch(c.Request().Context(), userID, timestamp)
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, viewResponse{
		Timestamp: img.Metadata.Timestamp,
		Image:     img.Data,
	})
}

func (g *Gateway) hdlrDelete(c echo.Context) error {
	userID, err := paramUserID(c)
	if err != nil {
		return err
	}

	timestamp, err := paramTimestamp(c)
	if err != nil {
		return err
	}

	if err := g.images.Delete(c.Request().Context(), userID, timestamp); err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, deleteResponse{
		Message:   "successfully deleted",
		Timestamp: timestamp,
	})
}

func paramUserID(c echo.Context) (string, error) {
	v := c.QueryParam("userId")
	if v == "" {
		return "", echo.NewHTTPError(http.StatusBadRequest, "empty query param `userId`")
	}

	return v, nil
}

func paramTimestamp(c echo.Context) (int64, error) {
	v, err := strconv.ParseInt(c.QueryParam("timestamp"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "bad query param `timestamp`")
	}

	return v, nil
}

// toHTTPError maps error kinds to statuses. A failed operation never
// produces a success status.
func toHTTPError(err error) error {
	var partial *entity.PartialFailureError

	switch {
	case errors.Is(err, entity.ErrDecode):
		return echo.NewHTTPError(http.StatusBadRequest, "unsupported or malformed image")
	case errors.Is(err, entity.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "image not found")
	case errors.As(err, &partial):
		return echo.NewHTTPError(http.StatusInternalServerError, fmt.Sprintf("stores drifted during %s", partial.Op))
	}

	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}
