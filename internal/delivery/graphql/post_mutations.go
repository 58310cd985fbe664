package delivery_graphql

import (
	"context"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"

	"blog-service/internal/model"
)

type createBlogPostInput struct {
	Title     string
	Content   string
	Published *bool
}

type updateBlogPostInput struct {
	Title     string
	Content   string
	Published bool
}

type postContentInternal struct {
	Title   string `validate:"required,min=1,max=255"`
	Content string `validate:"required,min=1"`
}

func (r *RootResolver) CreateBlogPost(ctx context.Context, args struct{ Input createBlogPostInput }) (*blogPostResolver, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	validationReq := &postContentInternal{
		Title:   args.Input.Title,
		Content: args.Input.Content,
	}
	if err := validate.Struct(validationReq); err != nil {
		return nil, newAPIError(codeBadInput, "invalid input: title and content must not be empty")
	}

	postDTO := &model.CreatePostDTO{
		AuthorID:  userID,
		Title:     args.Input.Title,
		Content:   args.Input.Content,
		Published: args.Input.Published,
	}

	createdPost, err := r.postService.CreatePost(ctx, postDTO)
	if err != nil {
		r.log.Error("Failed to create post",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return newBlogPostResolver(createdPost), nil
}

func (r *RootResolver) UpdateBlogPost(ctx context.Context, args struct {
	ID    graphql.ID
	Input updateBlogPostInput
}) (*blogPostResolver, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	id, err := parsePostID(args.ID)
	if err != nil {
		return nil, mapError(err)
	}

	validationReq := &postContentInternal{
		Title:   args.Input.Title,
		Content: args.Input.Content,
	}
	if err := validate.Struct(validationReq); err != nil {
		return nil, newAPIError(codeBadInput, "invalid input: title and content must not be empty")
	}

	updateDTO := &model.UpdatePostDTO{
		Title:     args.Input.Title,
		Content:   args.Input.Content,
		Published: args.Input.Published,
	}

	updatedPost, err := r.postService.UpdatePost(ctx, userID, id, updateDTO)
	if err != nil {
		r.log.Debug("Failed to update post",
			slog.Int64("user_id", userID),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	return newBlogPostResolver(updatedPost), nil
}

func (r *RootResolver) DeleteBlogPost(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return false, mapError(err)
	}

	id, err := parsePostID(args.ID)
	if err != nil {
		return false, mapError(err)
	}

	if err := r.postService.DeletePost(ctx, userID, id); err != nil {
		r.log.Debug("Failed to delete post",
			slog.Int64("user_id", userID),
			slog.Int64("id", id),
			slog.String("error", err.Error()))
		return false, mapError(err)
	}

	return true, nil
}
