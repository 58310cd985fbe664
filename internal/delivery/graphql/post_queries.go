package delivery_graphql

import (
	"context"
	"log/slog"

	graphql "github.com/graph-gophers/graphql-go"
)

func (r *RootResolver) BlogPosts(ctx context.Context) ([]*blogPostResolver, error) {
	posts, err := r.postService.ListPublished(ctx)
	if err != nil {
		r.log.Error("Failed to list published posts", slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	resolvers := make([]*blogPostResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, newBlogPostResolver(post))
	}
	return resolvers, nil
}

func (r *RootResolver) MyBlogPosts(ctx context.Context) ([]*blogPostResolver, error) {
	userID, err := actingUser(ctx)
	if err != nil {
		return nil, mapError(err)
	}

	posts, err := r.postService.ListByAuthor(ctx, userID)
	if err != nil {
		r.log.Error("Failed to list posts by author",
			slog.Int64("user_id", userID),
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	resolvers := make([]*blogPostResolver, 0, len(posts))
	for _, post := range posts {
		resolvers = append(resolvers, newBlogPostResolver(post))
	}
	return resolvers, nil
}

func (r *RootResolver) BlogPost(ctx context.Context, args struct{ ID graphql.ID }) (*blogPostResolver, error) {
	id, err := parsePostID(args.ID)
	if err != nil {
		return nil, mapError(err)
	}

	post, err := r.postService.GetPostByID(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return newBlogPostResolver(post), nil
}
