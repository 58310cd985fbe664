package delivery_graphql

import (
	"strconv"

	graphql "github.com/graph-gophers/graphql-go"

	"blog-service/internal/model"
)

type blogPostResolver struct {
	post   *model.Post
	author *model.User
}

func newBlogPostResolver(detailed *model.PostDetailed) *blogPostResolver {
	return &blogPostResolver{post: detailed.Post, author: detailed.Author}
}

func (r *blogPostResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.post.ID, 10))
}

func (r *blogPostResolver) Title() string {
	return r.post.Title
}

func (r *blogPostResolver) Content() string {
	return r.post.Content
}

func (r *blogPostResolver) Published() bool {
	return r.post.Published
}

func (r *blogPostResolver) Author() *userResolver {
	return &userResolver{user: r.author}
}

func (r *blogPostResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.post.CreatedAt.Time}
}

func (r *blogPostResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.post.UpdatedAt.Time}
}

type userResolver struct {
	user *model.User
}

func (r *userResolver) ID() graphql.ID {
	return graphql.ID(strconv.FormatInt(r.user.ID, 10))
}

func (r *userResolver) Username() string {
	return r.user.Username
}

func (r *userResolver) Email() string {
	return r.user.Email
}

func (r *userResolver) CreatedAt() graphql.Time {
	return graphql.Time{Time: r.user.CreatedAt.Time}
}

func (r *userResolver) UpdatedAt() graphql.Time {
	return graphql.Time{Time: r.user.UpdatedAt.Time}
}

type authResponseResolver struct {
	resp *model.AuthResponse
}

func (r *authResponseResolver) Token() string {
	return r.resp.Token
}

func (r *authResponseResolver) User() *userResolver {
	return &userResolver{user: r.resp.User}
}
