// Package research supplies an optional topic hint from what is
// trending on a configured subreddit. Purely advisory: any failure
// yields an empty hint and the prompt stage falls back to a random
// catalog topic.
package research

import (
	"context"
	"fmt"

	"github.com/vartanbeno/go-reddit/v2/reddit"
)

// TopicHint returns the title of the top hot post on the subreddit.
func TopicHint(ctx context.Context, subreddit string, limit int) (string, error) {
	if limit <= 0 {
		limit = 25
	}
	client, err := reddit.NewReadonlyClient()
	if err != nil {
		return "", fmt.Errorf("reddit client: %w", err)
	}

	posts, _, err := client.Subreddit.HotPosts(ctx, subreddit, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return "", fmt.Errorf("fetch r/%s hot posts: %w", subreddit, err)
	}
	for _, post := range posts {
		if post.Title != "" {
			return post.Title, nil
		}
	}
	return "", fmt.Errorf("r/%s returned no titled posts", subreddit)
}
