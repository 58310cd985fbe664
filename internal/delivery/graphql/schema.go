package delivery_graphql

// Schema is the GraphQL SDL served by this service.
const Schema = `
	scalar Time

	schema {
		query: Query
		mutation: Mutation
		subscription: Subscription
	}

	type Query {
		me: User!
		blogPosts: [BlogPost!]!
		myBlogPosts: [BlogPost!]!
		blogPost(id: ID!): BlogPost!
	}

	type Mutation {
		register(input: CreateUserInput!): AuthResponse!
		login(input: LoginInput!): AuthResponse!
		createBlogPost(input: CreateBlogPostInput!): BlogPost!
		updateBlogPost(id: ID!, input: UpdateBlogPostInput!): BlogPost!
		deleteBlogPost(id: ID!): Boolean!
	}

	type Subscription {
		blogPostPublished: BlogPost!
	}

	type BlogPost {
		id: ID!
		title: String!
		content: String!
		published: Boolean!
		author: User!
		createdAt: Time!
		updatedAt: Time!
	}

	type User {
		id: ID!
		username: String!
		email: String!
		createdAt: Time!
		updatedAt: Time!
	}

	type AuthResponse {
		token: String!
		user: User!
	}

	input CreateUserInput {
		username: String!
		email: String!
		password: String!
	}

	input LoginInput {
		email: String!
		password: String!
	}

	input CreateBlogPostInput {
		title: String!
		content: String!
		published: Boolean
	}

	input UpdateBlogPostInput {
		title: String!
		content: String!
		published: Boolean!
	}
`
