package dto

import (
	"time"

	"github.com/marblesound/marblesound-api/internal/models"
	"github.com/marblesound/marblesound-api/internal/repository"
	"github.com/samber/lo"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          uint64    `json:"id"`
	Username    string    `json:"username"`
	Avatar      *string   `json:"avatar"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// UserSummaryDTO is the compact author projection embedded in audios
type UserSummaryDTO struct {
	ID       uint64  `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

// AudioDTO represents an audio in API responses
type AudioDTO struct {
	ID         uint64          `json:"id"`
	Title      string          `json:"title"`
	File       string          `json:"file"`
	Cover      *string         `json:"cover"`
	Duration   *float64        `json:"duration"`
	Key        *string         `json:"key"`
	Instrument string          `json:"instrument"`
	Bpm        *int            `json:"bpm"`
	IsLoop     bool            `json:"is_loop"`
	AuthorID   uint64          `json:"author_id"`
	Genres     []string        `json:"genres"`
	Author     *UserSummaryDTO `json:"author,omitempty"`
}

// AudioWithCountDTO is an audio plus its current favorite count
type AudioWithCountDTO struct {
	AudioDTO
	FavoriteCount int64 `json:"favorite_count"`
}

// PlaylistEntryDTO is one ordered member of a playlist
type PlaylistEntryDTO struct {
	Position int      `json:"position"`
	Audio    AudioDTO `json:"audio"`
}

// PlaylistDTO represents a playlist in API responses
type PlaylistDTO struct {
	ID       uint64             `json:"id"`
	Name     string             `json:"name"`
	Cover    *string            `json:"cover"`
	AuthorID uint64             `json:"author_id"`
	Audios   []PlaylistEntryDTO `json:"audios,omitempty"`
}

// PlaylistWithCountDTO is a playlist plus its current favorite count
type PlaylistWithCountDTO struct {
	PlaylistDTO
	FavoriteCount int64 `json:"favorite_count"`
}

// FavoritesDTO groups a user's favorites by target kind
type FavoritesDTO struct {
	Audios    []AudioDTO    `json:"audios"`
	Playlists []PlaylistDTO `json:"playlists"`
}

// Conversion functions

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Username:    user.Username,
		Avatar:      user.Avatar,
		Description: user.Description,
		CreatedAt:   user.CreatedAt,
	}
}

// ToUserSummaryDTO converts a User model to UserSummaryDTO
func ToUserSummaryDTO(user models.User) UserSummaryDTO {
	return UserSummaryDTO{
		ID:       user.ID,
		Username: user.Username,
		Avatar:   user.Avatar,
	}
}

// ToAudioDTO converts an Audio model to AudioDTO
func ToAudioDTO(audio models.Audio) AudioDTO {
	dto := AudioDTO{
		ID:       audio.ID,
		Title:    audio.Title,
		File:     audio.File,
		Cover:    audio.Cover,
		Duration: audio.Duration,
		Bpm:      audio.Bpm,
		IsLoop:   audio.IsLoop,
		AuthorID: audio.AuthorID,
		Genres: lo.Map(audio.Genres, func(link models.AudioGenre, _ int) string {
			return link.Genre.Name
		}),
	}

	if audio.Key != nil {
		dto.Key = &audio.Key.Name
	}
	if audio.Instrument.ID != 0 {
		dto.Instrument = audio.Instrument.Name
	}
	if audio.Author.ID != 0 {
		author := ToUserSummaryDTO(audio.Author)
		dto.Author = &author
	}

	return dto
}

// ToAudioWithCountDTO converts a search/listing result row
func ToAudioWithCountDTO(row repository.AudioWithFavorites) AudioWithCountDTO {
	return AudioWithCountDTO{
		AudioDTO:      ToAudioDTO(row.Audio),
		FavoriteCount: row.FavoriteCount,
	}
}

// ToPlaylistDTO converts a Playlist model to PlaylistDTO
func ToPlaylistDTO(playlist models.Playlist) PlaylistDTO {
	return PlaylistDTO{
		ID:       playlist.ID,
		Name:     playlist.Name,
		Cover:    playlist.Cover,
		AuthorID: playlist.AuthorID,
		Audios: lo.Map(playlist.Audios, func(entry models.PlaylistAudio, _ int) PlaylistEntryDTO {
			return PlaylistEntryDTO{
				Position: entry.Position,
				Audio:    ToAudioDTO(entry.Audio),
			}
		}),
	}
}

// ToPlaylistWithCountDTO converts a popularity listing row
func ToPlaylistWithCountDTO(row repository.PlaylistWithFavorites) PlaylistWithCountDTO {
	return PlaylistWithCountDTO{
		PlaylistDTO:   ToPlaylistDTO(row.Playlist),
		FavoriteCount: row.FavoriteCount,
	}
}

// ToFavoritesDTO splits favorite rows by target kind
func ToFavoritesDTO(favorites []models.Favorite) FavoritesDTO {
	result := FavoritesDTO{
		Audios:    []AudioDTO{},
		Playlists: []PlaylistDTO{},
	}

	for _, favorite := range favorites {
		if favorite.AudioID != nil && favorite.Audio != nil {
			result.Audios = append(result.Audios, ToAudioDTO(*favorite.Audio))
		}
		if favorite.PlaylistID != nil && favorite.Playlist != nil {
			result.Playlists = append(result.Playlists, ToPlaylistDTO(*favorite.Playlist))
		}
	}

	return result
}
