/* Sample package used by the generator golden tests. */
package sample
