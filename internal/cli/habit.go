package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Habit commands",
	}

	cmd.AddCommand(newHabitListCmd())
	cmd.AddCommand(newHabitAddCmd())
	cmd.AddCommand(newHabitCheckInCmd())
	cmd.AddCommand(newHabitRenameCmd())
	cmd.AddCommand(newHabitRemoveCmd())

	return cmd
}

func newHabitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := fetchUserData()
			if err != nil {
				return err
			}

			output(cmd).Print(HabitList(user.Habits))
			return nil
		},
	}
}

func newHabitAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HabitResult

			if err := client.Post("/api/add-habit", map[string]string{"habitName": args[0]}, &result); err != nil {
				return err
			}

			output(cmd).Print(result.Habit)
			return nil
		},
	}
}

func newHabitCheckInCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkin <habit-id>",
		Short: "Check in on a habit for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CheckInResult

			if err := client.Post("/api/checkin-habit", map[string]string{"habitId": args[0]}, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newHabitRenameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <habit-id> <name>",
		Short: "Rename a habit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveHabits(cmd, func(habits []Habit) ([]Habit, error) {
				for i := range habits {
					if habits[i].ID == args[0] {
						habits[i].Name = args[1]
						return habits, nil
					}
				}
				return nil, fmt.Errorf("habit %s not found", args[0])
			})
		},
	}
}

func newHabitRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <habit-id>",
		Short: "Remove a habit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return saveHabits(cmd, func(habits []Habit) ([]Habit, error) {
				for i := range habits {
					if habits[i].ID == args[0] {
						return append(habits[:i], habits[i+1:]...), nil
					}
				}
				return nil, fmt.Errorf("habit %s not found", args[0])
			})
		},
	}
}

// saveHabits fetches the habit list, edits it and writes it back with save-data
func saveHabits(cmd *cobra.Command, edit func([]Habit) ([]Habit, error)) error {
	user, err := fetchUserData()
	if err != nil {
		return err
	}

	habits, err := edit(user.Habits)
	if err != nil {
		return err
	}

	updates := make([]map[string]string, 0, len(habits))
	for _, h := range habits {
		updates = append(updates, map[string]string{"id": h.ID, "name": h.Name})
	}

	var result HabitsResult
	if err := client.Post("/api/save-data", map[string]any{"habits": updates}, &result); err != nil {
		return err
	}

	output(cmd).Print(HabitList(result.Habits))
	return nil
}
