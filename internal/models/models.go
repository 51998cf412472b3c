package models

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	Id           uuid.UUID `json:"id"`
	Display_name *string   `json:"display_name"`
}

type Comic struct {
	Id          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Author      *string   `json:"author"`
	Description *string   `json:"description"`
	Cover_url   *string   `json:"cover_url"`
}

type ComicSummary struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Cover_url *string   `json:"cover_url"`
}

type Chapter struct {
	Id     uuid.UUID `json:"id"`
	Title  *string   `json:"title"`
	Number *int      `json:"number"`
}

type Page struct {
	Id          uuid.UUID `json:"id"`
	Page_number *int      `json:"page_number"`
	Image_url   *string   `json:"image_url"`
}

type Favorite struct {
	Id       int64     `json:"id"`
	Comic_id uuid.UUID `json:"comic_id"`
	User_id  uuid.UUID `json:"user_id"`
}

type Rating struct {
	Id     int64 `json:"id"`
	Rating int   `json:"rating"`
}

type Comment struct {
	Id         uuid.UUID `json:"id"`
	Content    string    `json:"content"`
	User_id    uuid.UUID `json:"user_id"`
	Created_at time.Time `json:"created_at"`
}

// RatingActivity and CommentActivity are a user's own rows joined with the
// comic they belong to. Comic is nil when the comic has since been deleted.
type RatingActivity struct {
	Id         int64         `json:"id"`
	Rating     int           `json:"rating"`
	Created_at time.Time     `json:"created_at"`
	Comic      *ComicSummary `json:"comic"`
}

type CommentActivity struct {
	Id         uuid.UUID     `json:"id"`
	Content    string        `json:"content"`
	Created_at time.Time     `json:"created_at"`
	Comic      *ComicSummary `json:"comic"`
}

type FavoriteComic struct {
	Id    int64         `json:"id"`
	Comic *ComicSummary `json:"comic"`
}

type HandleCredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type HandleSessionResponse struct {
	User_id      *uuid.UUID `json:"user_id"`
	Email        *string    `json:"email"`
	Display_name *string    `json:"display_name"`
}

type HandleSetRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type HandleRatingsResponse struct {
	Average     *float64 `json:"average"`
	Count       int      `json:"count"`
	User_rating *int     `json:"user_rating"`
}

type HandleAddCommentRequest struct {
	Content string `json:"content" validate:"required,max=800"`
}

type HandleUpdateProfileRequest struct {
	Display_name string `json:"display_name" validate:"max=60"`
}

type HandleGetComicsResponse struct {
	Comics []Comic `json:"comics"`
}

type HandleComicDetailResponse struct {
	Comic       *Comic    `json:"comic"`
	Chapters    []Chapter `json:"chapters"`
	Is_favorite bool      `json:"is_favorite"`
}

type HandleGetPagesResponse struct {
	Pages   []Page `json:"pages"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Current *Page  `json:"current"`
}

type HandleActivityResponse struct {
	Ratings  []RatingActivity  `json:"ratings"`
	Comments []CommentActivity `json:"comments"`
}

type HandleFavoritesResponse struct {
	Favorites []FavoriteComic `json:"favorites"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
