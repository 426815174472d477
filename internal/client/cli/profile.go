package cli

import (
	"context"
	"fmt"
	"log"
)

// Profile prints the dashboard: account info, aggregate engagement and the
// user's own posts.
func (a *App) Profile(ctx context.Context) error {
	d, err := a.api.Dashboard(ctx)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	u := d.UserInfo
	fmt.Println("Username:", u.Username)
	if u.State != "" {
		fmt.Println("Region:  ", u.State)
	}
	if u.WalletAddress != "" {
		fmt.Println("Wallet:  ", u.WalletAddress)
	}
	if u.UserLevel != "" {
		fmt.Println("Level:   ", u.UserLevel)
	}
	if u.Bio != "" {
		fmt.Println("Bio:     ", u.Bio)
	}

	fmt.Printf("Posts: %d  Likes: %d  Dislikes: %d  Comments: %d\n",
		len(d.Posts), d.TotalLikes(), d.TotalDislikes(), d.TotalComments())

	for _, p := range d.Posts {
		fmt.Printf("  [%s] %s (likes: %d)\n", p.ID, p.Caption, p.LikeCount)
	}
	return nil
}
